package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
	"github.com/nik0sc/esc-ticket-service/internal/core/ports"
	"github.com/nik0sc/esc-ticket-service/internal/upstream"
)

// IdentityKey is the echo context key under which the verified identity is
// stored for downstream handlers.
const IdentityKey = "identity"

// Session verifies the caller's session token and injects the resolved
// identity into the request context. A missing token is rejected before any
// upstream call is made.
func Session(verifier ports.SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(upstream.HeaderSessionToken)
			if token == "" {
				return domain.ErrNoSessionToken()
			}

			identity, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}
