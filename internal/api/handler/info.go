package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InfoHandler serves the unauthenticated service identification endpoint on
// / and /version.
type InfoHandler struct {
	name string
	rev  string
}

// NewInfoHandler builds the handler. rev is the deployed git revision; empty
// means the service was started outside a deployment.
func NewInfoHandler(name, rev string) *InfoHandler {
	if rev == "" {
		rev = "Not deployed"
	}
	return &InfoHandler{name: name, rev: rev}
}

type infoResponse struct {
	Name string `json:"name"`
	Rev  string `json:"rev"`
}

// Info handles GET / and GET /version.
//
// @Summary      Service name and deployed revision
// @Tags         meta
// @Produce      json
// @Success      200  {object}  infoResponse
// @Router       /version [get]
func (h *InfoHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, infoResponse{Name: h.name, Rev: h.rev})
}
