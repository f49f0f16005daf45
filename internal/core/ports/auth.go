package ports

import (
	"context"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

// SessionVerifier exchanges an opaque session token for the caller's
// identity. A failed verification yields a *domain.AuthError; there is no
// retry and no partial result.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// RoleResolver reports whether an identity holds the administrator role.
// The result is never cached; every decision that needs it asks again.
type RoleResolver interface {
	ResolveIsAdmin(ctx context.Context, userObjectID string) (bool, error)
}

// PolicyLevel selects the access rule applied to an operation.
type PolicyLevel int

const (
	// OwnerOrAdmin allows the resource owner without a role lookup, anyone
	// else only if they are an administrator.
	OwnerOrAdmin PolicyLevel = iota
	// AdminOnly always requires a role lookup.
	AdminOnly
)

// Authorizer makes the terminal allow/deny decision for one request.
// A nil return means allowed; a *domain.AuthError with kind
// AuthAccessDenied means denied; any other error is an upstream fault.
type Authorizer interface {
	Require(ctx context.Context, actor *domain.Identity, ownerID string, level PolicyLevel, action string) error
}
