package domain

// Identity is the caller resolved from a session token by the session
// service. It lives for exactly one request and is never persisted.
type Identity struct {
	// UserObjectID is the stable opaque identifier assigned by the session
	// service. Ticket ownership is recorded against this value.
	UserObjectID string
	Username     string
}
