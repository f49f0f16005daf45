package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nik0sc/esc-ticket-service/internal/core/ports"
)

// TicketHandler handles HTTP requests for ticket operations. All access
// decisions live in the service layer; the handler only shapes requests and
// responses.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// GetAll handles GET /ticket.
//
// @Summary      List all tickets (admin only)
// @Tags         tickets
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 10)"
// @Param        offset  query     int  false  "Page offset (default 0)"
// @Success      200     {array}   ticketSummaryResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      504     {object}  errorResponse
// @Router       /ticket [get]
func (h *TicketHandler) GetAll(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.ListAll(c.Request().Context(), actor, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponses(tickets))
}

// GetByID handles GET /ticket/:id.
//
// @Summary      Get a ticket by id (owner or admin)
// @Tags         tickets
// @Produce      json
// @Param        id   path      int  true  "Ticket id"
// @Success      200  {object}  ticketResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      504  {object}  errorResponse
// @Router       /ticket/{id} [get]
func (h *TicketHandler) GetByID(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := ticketID(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTicketResponse(ticket))
}

// GetMine handles GET /ticket/byUser.
//
// @Summary      List the caller's own tickets
// @Tags         tickets
// @Produce      json
// @Param        limit   query     int  false  "Page size (default 10)"
// @Param        offset  query     int  false  "Page offset (default 0)"
// @Success      200     {array}   ticketSummaryResponse
// @Failure      401     {object}  errorResponse
// @Router       /ticket/byUser [get]
func (h *TicketHandler) GetMine(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.ListMine(c.Request().Context(), actor, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponses(tickets))
}

// GetByTeam handles GET /ticket/byTeam/:teamId.
//
// @Summary      List a team's tickets (admin only)
// @Tags         tickets
// @Produce      json
// @Param        teamId  path      int  true   "Team id"
// @Param        limit   query     int  false  "Page size (default 10)"
// @Param        offset  query     int  false  "Page offset (default 0)"
// @Success      200     {array}   ticketSummaryResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /ticket/byTeam/{teamId} [get]
func (h *TicketHandler) GetByTeam(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	teamID, err := strconv.ParseInt(c.Param("teamId"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team id")
	}

	tickets, err := h.service.ListByTeam(c.Request().Context(), actor, teamID, pageFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponses(tickets))
}

// Create handles POST /ticket.
//
// @Summary      Open a new ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string               false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createTicketRequest  true   "Ticket details"
// @Success      201              {object}  createTicketResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /ticket [post]
func (h *TicketHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), actor, ports.CreateTicketInput{
		Title:          req.Title,
		Message:        req.Message,
		Priority:       req.Priority,
		Severity:       req.Severity,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, createTicketResponse{ID: result.ID})
}

// Update handles PUT /ticket/:id — the owner-facing update, limited to the
// ticket's message.
//
// @Summary      Update a ticket's message (owner or admin)
// @Tags         tickets
// @Accept       json
// @Param        id    path      int                  true  "Ticket id"
// @Param        body  body      updateTicketRequest  true  "Fields to update"
// @Success      200   "updated"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /ticket/{id} [put]
func (h *TicketHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := ticketID(c)
	if err != nil {
		return err
	}

	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Message == nil {
		return c.NoContent(http.StatusOK)
	}

	if err := h.service.UpdateMessage(c.Request().Context(), actor, id, *req.Message); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// UpdateProtected handles PUT /ticket/:id/protected — the full whitelisted
// field update.
//
// @Summary      Update a ticket's protected fields (owner or admin)
// @Tags         tickets
// @Accept       json
// @Param        id    path      int                     true  "Ticket id"
// @Param        body  body      protectedUpdateRequest  true  "Fields to update"
// @Success      200   "updated"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /ticket/{id}/protected [put]
func (h *TicketHandler) UpdateProtected(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := ticketID(c)
	if err != nil {
		return err
	}

	var req protectedUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := ports.TicketUpdate{
		Title:        req.Title,
		Message:      req.Message,
		Response:     req.Response,
		Priority:     req.Priority,
		Severity:     req.Severity,
		AssignedTeam: req.AssignedTeam,
		StatusFlag:   req.StatusFlag,
	}
	if req.CloseTime != nil {
		// Format already validated by the datetime tag.
		ts, err := time.Parse(closeTimeLayout, *req.CloseTime)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid close_time")
		}
		update.CloseTime = &ts
	}

	if err := h.service.UpdateProtected(c.Request().Context(), actor, id, update); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func ticketID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid ticket id")
	}
	return id, nil
}

// pageFromQuery reads limit/offset with the historical defaults of 10 and 0.
// Non-numeric values fall back to the defaults rather than erroring.
func pageFromQuery(c echo.Context) ports.ListPage {
	page := ports.ListPage{Limit: 10, Offset: 0}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		page.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		page.Offset = v
	}
	return page
}
