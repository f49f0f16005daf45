package domain

import (
	"errors"
	"time"
)

// summaryLen is the number of characters kept when a ticket's message or
// response is rendered in a list view.
const summaryLen = 32

var ErrTicketNotFound = errors.New("ticket not found")

// Ticket is the core aggregate root. OpenerUserID is set at creation from the
// caller's verified identity and is immutable thereafter; every ownership
// check compares against it.
type Ticket struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Response     string     `json:"response,omitempty"`
	OpenTime     time.Time  `json:"open_time"`
	CloseTime    *time.Time `json:"close_time,omitempty"`
	Priority     *int       `json:"priority,omitempty"`
	Severity     *int       `json:"severity,omitempty"`
	OpenerUserID string     `json:"opener_user"`
	AssignedTeam *int64     `json:"assigned_team,omitempty"`
	StatusFlag   int        `json:"status_flag"`
}

// Summarize truncates free-text fields to summaryLen characters for list
// responses, appending "..." when text was cut.
func Summarize(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryLen {
		return s
	}
	return string(runes[:summaryLen]) + "..."
}
