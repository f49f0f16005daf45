package handler

import (
	"time"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

// closeTimeLayout is the timestamp format accepted for close_time, matching
// what the frontend has always sent (RFC3339 with milliseconds, UTC).
const closeTimeLayout = "2006-01-02T15:04:05.000Z"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error    string `json:"error"`
	Response string `json:"response,omitempty"`
}

// --- Request types ---

type createTicketRequest struct {
	Title    string `json:"title"    validate:"required"`
	Message  string `json:"message"  validate:"required"`
	Priority *int   `json:"priority" validate:"omitempty,min=0"`
	Severity *int   `json:"severity" validate:"omitempty,min=0"`
}

type updateTicketRequest struct {
	Message *string `json:"message" validate:"omitempty,min=1"`
}

type protectedUpdateRequest struct {
	Title        *string `json:"title"         validate:"omitempty,min=1"`
	Message      *string `json:"message"       validate:"omitempty,min=1"`
	Response     *string `json:"response"      validate:"omitempty,min=1"`
	CloseTime    *string `json:"close_time"    validate:"omitempty,datetime=2006-01-02T15:04:05.000Z"`
	Priority     *int    `json:"priority"      validate:"omitempty,min=0"`
	Severity     *int    `json:"severity"      validate:"omitempty,min=0"`
	AssignedTeam *int64  `json:"assigned_team" validate:"omitempty,min=0"`
	StatusFlag   *int    `json:"status_flag"   validate:"omitempty,min=0"`
}

// --- Response types ---
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal changes.

type createTicketResponse struct {
	ID int64 `json:"id"`
}

type ticketResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Response     string     `json:"response,omitempty"`
	OpenTime     time.Time  `json:"open_time"`
	CloseTime    *time.Time `json:"close_time,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
	Severity     *int       `json:"severity,omitempty"`
	OpenerUser   string     `json:"opener_user"`
	AssignedTeam *int64     `json:"assigned_team,omitempty"`
	StatusFlag   int        `json:"status_flag"`
}

// ticketSummaryResponse is the list item shape. Message and response are
// truncated so list payloads stay small.
type ticketSummaryResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Response     string     `json:"response,omitempty"`
	OpenTime     time.Time  `json:"open_time"`
	CloseTime    *time.Time `json:"close_time,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
	Severity     *int       `json:"severity,omitempty"`
	OpenerUser   string     `json:"opener_user"`
	AssignedTeam *int64     `json:"assigned_team,omitempty"`
	StatusFlag   int        `json:"status_flag"`
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:           t.ID,
		Title:        t.Title,
		Message:      t.Message,
		Response:     t.Response,
		OpenTime:     t.OpenTime,
		CloseTime:    t.CloseTime,
		Priority:     t.Priority,
		Severity:     t.Severity,
		OpenerUser:   t.OpenerUserID,
		AssignedTeam: t.AssignedTeam,
		StatusFlag:   t.StatusFlag,
	}
}

func toSummaryResponses(tickets []*domain.Ticket) []ticketSummaryResponse {
	out := make([]ticketSummaryResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketSummaryResponse{
			ID:           t.ID,
			Title:        t.Title,
			Message:      domain.Summarize(t.Message),
			Response:     domain.Summarize(t.Response),
			OpenTime:     t.OpenTime,
			CloseTime:    t.CloseTime,
			Priority:     t.Priority,
			Severity:     t.Severity,
			OpenerUser:   t.OpenerUserID,
			AssignedTeam: t.AssignedTeam,
			StatusFlag:   t.StatusFlag,
		})
	}
	return out
}
