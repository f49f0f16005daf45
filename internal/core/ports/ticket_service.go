package ports

import (
	"context"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

// CreateTicketInput carries all data needed to open a new ticket.
type CreateTicketInput struct {
	Title    string
	Message  string
	Priority *int
	Severity *int
	// IdempotencyKey, when non-empty, makes the create replay-safe.
	IdempotencyKey string
}

// CreateTicketResult is returned after opening a ticket.
type CreateTicketResult struct {
	ID int64
	// AlreadyExisted is true when the idempotency key matched a previous create.
	AlreadyExisted bool
}

// ListPage carries pagination for list endpoints.
type ListPage struct {
	Limit  int // <= 0 means the default page size
	Offset int
}

// TicketService defines the use-case operations for tickets. Every method
// takes the verified actor; access decisions happen inside the service so
// the ownership short-circuit cannot be reordered by transport-layer
// refactors.
type TicketService interface {
	// Create opens a ticket owned by actor.
	Create(ctx context.Context, actor *domain.Identity, in CreateTicketInput) (*CreateTicketResult, error)
	// Get returns a single ticket. Owner-or-admin.
	Get(ctx context.Context, actor *domain.Identity, id int64) (*domain.Ticket, error)
	// ListAll returns a page over every ticket. Admin only.
	ListAll(ctx context.Context, actor *domain.Identity, page ListPage) ([]*domain.Ticket, error)
	// ListMine returns the actor's own tickets.
	ListMine(ctx context.Context, actor *domain.Identity, page ListPage) ([]*domain.Ticket, error)
	// ListByTeam returns a team's tickets. Admin only.
	ListByTeam(ctx context.Context, actor *domain.Identity, teamID int64, page ListPage) ([]*domain.Ticket, error)
	// UpdateMessage replaces the ticket's message. Owner-or-admin.
	UpdateMessage(ctx context.Context, actor *domain.Identity, id int64, message string) error
	// UpdateProtected applies a whitelisted field update. Owner-or-admin.
	UpdateProtected(ctx context.Context, actor *domain.Identity, id int64, update TicketUpdate) error
}
