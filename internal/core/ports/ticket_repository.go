package ports

import (
	"context"
	"time"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

// TicketFilter carries the query parameters for listing tickets.
type TicketFilter struct {
	OpenerUserID string // non-empty: only tickets opened by this identity
	AssignedTeam *int64 // non-nil: only tickets assigned to this team
	Limit        int
	Offset       int
}

// TicketUpdate holds the whitelisted mutable fields of a ticket. Nil fields
// are left untouched. OpenerUserID is deliberately absent: ownership is
// immutable after creation.
type TicketUpdate struct {
	Title        *string
	Message      *string
	Response     *string
	CloseTime    *time.Time
	Priority     *int
	Severity     *int
	AssignedTeam *int64
	StatusFlag   *int
}

// IsEmpty reports whether the update would change nothing.
func (u TicketUpdate) IsEmpty() bool {
	return u.Title == nil && u.Message == nil && u.Response == nil &&
		u.CloseTime == nil && u.Priority == nil && u.Severity == nil &&
		u.AssignedTeam == nil && u.StatusFlag == nil
}

// TicketRepository defines persistence operations for tickets.
type TicketRepository interface {
	// Create inserts the ticket and returns its assigned id.
	Create(ctx context.Context, t *domain.Ticket) (int64, error)
	// FindByID returns domain.ErrTicketNotFound when no ticket exists.
	FindByID(ctx context.Context, id int64) (*domain.Ticket, error)
	// List returns tickets matching filter, most recently opened first.
	List(ctx context.Context, filter TicketFilter) ([]*domain.Ticket, error)
	// Update applies the non-nil fields of update to the ticket and returns
	// domain.ErrTicketNotFound when no ticket matched.
	Update(ctx context.Context, id int64, update TicketUpdate) error
}

// IdempotencyStore remembers ticket ids by client-supplied idempotency key
// so that a replayed create returns the original ticket instead of opening
// a duplicate.
type IdempotencyStore interface {
	// Lookup returns the remembered ticket id and true when key was seen.
	Lookup(ctx context.Context, key string) (int64, bool, error)
	Remember(ctx context.Context, key string, ticketID int64) error
}
