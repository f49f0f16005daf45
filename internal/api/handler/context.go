package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nik0sc/esc-ticket-service/internal/api/middleware"
	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// fast-fails before any service call. A missing identity means the route was
// registered without the middleware, which is a wiring bug, but it must not
// panic a live request.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if identity == nil || identity.UserObjectID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return identity, nil
}
