package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Response carries the upstream status line and is populated only for
// 500-class upstream failures; 401/403 responses never leak upstream
// internals.
type errorResponse struct {
	Error    string `json:"error"`
	Response string `json:"response,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps AuthError kinds to their caller-visible status codes.
//   - Maps known domain errors to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return resolveAuthError(ae, log, c)
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	if errors.Is(err, domain.ErrTicketNotFound) {
		return http.StatusNotFound, errorResponse{Error: "Ticket not found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

func resolveAuthError(ae *domain.AuthError, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	switch ae.Kind {
	case domain.AuthMissingToken, domain.AuthInvalidToken:
		return http.StatusUnauthorized, errorResponse{Error: ae.Message}
	case domain.AuthUpstreamTimeout:
		log.Warn().Str("path", c.Path()).Msg(ae.Message)
		return http.StatusGatewayTimeout, errorResponse{Error: ae.Message}
	case domain.AuthIdentityNotFound:
		return http.StatusNotFound, errorResponse{Error: ae.Message}
	case domain.AuthAccessDenied:
		return http.StatusForbidden, errorResponse{Error: ae.Message}
	default: // AuthUpstreamUnavailable
		log.Error().
			Str("path", c.Path()).
			Str("upstream_response", ae.Detail).
			Msg(ae.Message)
		return http.StatusInternalServerError, errorResponse{Error: ae.Message, Response: ae.Detail}
	}
}
