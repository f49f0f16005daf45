package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nik0sc/esc-ticket-service/internal/api/metrics"
	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
	"github.com/nik0sc/esc-ticket-service/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type TicketService struct {
	repo   ports.TicketRepository
	access ports.Authorizer
	idem   ports.IdempotencyStore
	log    zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, access ports.Authorizer, idem ports.IdempotencyStore, log zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, access: access, idem: idem, log: log}
}

// Create opens a ticket owned by actor. When an idempotency key is supplied
// and already seen, the original ticket id is returned without a second
// insert.
func (s *TicketService) Create(ctx context.Context, actor *domain.Identity, in ports.CreateTicketInput) (*ports.CreateTicketResult, error) {
	if in.IdempotencyKey != "" {
		id, seen, err := s.idem.Lookup(ctx, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		} else if seen {
			metrics.TicketsIdempotentReplaysTotal.Inc()
			s.log.Info().Int64("ticket_id", id).Str("idempotency_key", in.IdempotencyKey).Msg("idempotent replay")
			return &ports.CreateTicketResult{ID: id, AlreadyExisted: true}, nil
		}
	}

	ticket := &domain.Ticket{
		Title:        in.Title,
		Message:      in.Message,
		Priority:     in.Priority,
		Severity:     in.Severity,
		OpenTime:     time.Now().UTC(),
		OpenerUserID: actor.UserObjectID,
	}

	id, err := s.repo.Create(ctx, ticket)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create ticket")
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	if in.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, in.IdempotencyKey, id); err != nil {
			s.log.Warn().Err(err).Int64("ticket_id", id).Msg("failed to record idempotency key")
		}
	}

	metrics.TicketsCreatedTotal.Inc()
	s.log.Info().Int64("ticket_id", id).Str("opener", actor.UserObjectID).Msg("ticket created")
	return &ports.CreateTicketResult{ID: id}, nil
}

// Get returns one ticket. Existence is checked before authorization: a
// missing ticket is not found for everyone, independent of role.
func (s *TicketService) Get(ctx context.Context, actor *domain.Identity, id int64) (*domain.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Require(ctx, actor, ticket.OpenerUserID, ports.OwnerOrAdmin, "view"); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListAll returns a page over every ticket, most recent first. Admin only.
func (s *TicketService) ListAll(ctx context.Context, actor *domain.Identity, page ports.ListPage) ([]*domain.Ticket, error) {
	if err := s.access.Require(ctx, actor, "", ports.AdminOnly, "list"); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.TicketFilter{
		Limit:  clampLimit(page.Limit),
		Offset: max(page.Offset, 0),
	})
}

// ListMine returns the actor's own tickets. No role lookup: a verified
// session is sufficient to see your own tickets.
func (s *TicketService) ListMine(ctx context.Context, actor *domain.Identity, page ports.ListPage) ([]*domain.Ticket, error) {
	return s.repo.List(ctx, ports.TicketFilter{
		OpenerUserID: actor.UserObjectID,
		Limit:        clampLimit(page.Limit),
		Offset:       max(page.Offset, 0),
	})
}

// ListByTeam returns a team's tickets. Admin only.
func (s *TicketService) ListByTeam(ctx context.Context, actor *domain.Identity, teamID int64, page ports.ListPage) ([]*domain.Ticket, error) {
	if err := s.access.Require(ctx, actor, "", ports.AdminOnly, "list"); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.TicketFilter{
		AssignedTeam: &teamID,
		Limit:        clampLimit(page.Limit),
		Offset:       max(page.Offset, 0),
	})
}

// UpdateMessage replaces the ticket's message. Owner-or-admin.
func (s *TicketService) UpdateMessage(ctx context.Context, actor *domain.Identity, id int64, message string) error {
	return s.update(ctx, actor, id, ports.TicketUpdate{Message: &message})
}

// UpdateProtected applies a whitelisted field update. Owner-or-admin.
func (s *TicketService) UpdateProtected(ctx context.Context, actor *domain.Identity, id int64, update ports.TicketUpdate) error {
	return s.update(ctx, actor, id, update)
}

func (s *TicketService) update(ctx context.Context, actor *domain.Identity, id int64, update ports.TicketUpdate) error {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.access.Require(ctx, actor, ticket.OpenerUserID, ports.OwnerOrAdmin, "update"); err != nil {
		return err
	}
	if update.IsEmpty() {
		return nil
	}
	if err := s.repo.Update(ctx, id, update); err != nil {
		return err
	}
	s.log.Info().Int64("ticket_id", id).Str("actor", actor.UserObjectID).Msg("ticket updated")
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
