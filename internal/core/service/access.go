package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nik0sc/esc-ticket-service/internal/api/metrics"
	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
	"github.com/nik0sc/esc-ticket-service/internal/core/ports"
)

// AccessPolicy makes the terminal allow/deny decision for one request.
//
// For OwnerOrAdmin the ownership comparison runs strictly before the role
// lookup: the owner path must never cost a directory call. Keep the decision
// in this single two-branch function so a refactor cannot reorder it.
type AccessPolicy struct {
	roles ports.RoleResolver
	log   zerolog.Logger
}

func NewAccessPolicy(roles ports.RoleResolver, log zerolog.Logger) *AccessPolicy {
	return &AccessPolicy{roles: roles, log: log}
}

// Require returns nil when actor may perform action on the resource owned by
// ownerID. A denial is a *domain.AuthError with kind AuthAccessDenied; any
// other error is a propagated upstream fault.
func (p *AccessPolicy) Require(ctx context.Context, actor *domain.Identity, ownerID string, level ports.PolicyLevel, action string) error {
	switch level {
	case ports.OwnerOrAdmin:
		if actor.UserObjectID == ownerID {
			metrics.AuthDecisionsTotal.WithLabelValues("owner_or_admin", "allowed_owner").Inc()
			return nil
		}

		isAdmin, err := p.roles.ResolveIsAdmin(ctx, actor.UserObjectID)
		if err != nil {
			metrics.AuthDecisionsTotal.WithLabelValues("owner_or_admin", "error").Inc()
			return err
		}
		if !isAdmin {
			metrics.AuthDecisionsTotal.WithLabelValues("owner_or_admin", "denied").Inc()
			p.log.Debug().
				Str("user_object_id", actor.UserObjectID).
				Str("action", action).
				Msg("non-owner non-admin denied")
			return domain.ErrNotTicketAuthorized(action)
		}
		metrics.AuthDecisionsTotal.WithLabelValues("owner_or_admin", "allowed_admin").Inc()
		return nil

	case ports.AdminOnly:
		isAdmin, err := p.roles.ResolveIsAdmin(ctx, actor.UserObjectID)
		if err != nil {
			metrics.AuthDecisionsTotal.WithLabelValues("admin_only", "error").Inc()
			return err
		}
		if !isAdmin {
			metrics.AuthDecisionsTotal.WithLabelValues("admin_only", "denied").Inc()
			return domain.ErrAdminRequired()
		}
		metrics.AuthDecisionsTotal.WithLabelValues("admin_only", "allowed_admin").Inc()
		return nil

	default:
		return fmt.Errorf("unknown policy level %d", level)
	}
}
