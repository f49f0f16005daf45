package domain

import "errors"

// AuthErrorKind classifies a failed authorization step. Every upstream
// failure is classified exactly once, at the client boundary, and the
// resulting AuthError propagates untouched to the HTTP error handler.
type AuthErrorKind string

const (
	// AuthMissingToken: the request carried no session token. No upstream
	// call is made for this case.
	AuthMissingToken AuthErrorKind = "missing_token"
	// AuthInvalidToken: the session service explicitly rejected the token.
	AuthInvalidToken AuthErrorKind = "invalid_token"
	// AuthUpstreamTimeout: an upstream call exceeded its deadline, either
	// locally or reported by the gateway (504).
	AuthUpstreamTimeout AuthErrorKind = "upstream_timeout"
	// AuthUpstreamUnavailable: any other transport or non-2xx failure.
	AuthUpstreamUnavailable AuthErrorKind = "upstream_unavailable"
	// AuthIdentityNotFound: the user directory has no record for a verified
	// identity.
	AuthIdentityNotFound AuthErrorKind = "identity_not_found"
	// AuthAccessDenied: a valid decision outcome, not a fault. The caller is
	// authenticated but not permitted.
	AuthAccessDenied AuthErrorKind = "access_denied"
)

// AuthError is the normalized failure produced by the authorization
// pipeline. Message is caller-visible; Detail carries the upstream status
// line and is only rendered on 500-class responses.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Detail  string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// AuthKind extracts the classification from err, unwrapping as needed.
func AuthKind(err error) (AuthErrorKind, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// IsAuthKind reports whether err is an AuthError of the given kind.
func IsAuthKind(err error, kind AuthErrorKind) bool {
	k, ok := AuthKind(err)
	return ok && k == kind
}

// ErrNoSessionToken is returned before any upstream call when the request
// carries no token.
func ErrNoSessionToken() *AuthError {
	return &AuthError{Kind: AuthMissingToken, Message: "No session token"}
}

// ErrNotTicketAuthorized is the denial for owner-or-admin checks. The action
// verb ("view", "update") matches the operation being attempted.
func ErrNotTicketAuthorized(action string) *AuthError {
	return &AuthError{Kind: AuthAccessDenied, Message: "You are not authorized to " + action + " this ticket"}
}

// ErrAdminRequired is the denial for admin-only operations.
func ErrAdminRequired() *AuthError {
	return &AuthError{Kind: AuthAccessDenied, Message: "Only an admin can perform this action"}
}
