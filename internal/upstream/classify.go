// Package upstream implements the clients for the two external services the
// authorization pipeline depends on: the session service (token → identity)
// and the user directory (identity → admin flag).
//
// Both clients perform exactly one attempt per call, bounded by a
// configurable timeout. Failures are classified once, here at the boundary,
// into domain.AuthError and propagate untouched to the HTTP layer.
package upstream

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

// classifyTransport maps a failed outbound call that produced no usable HTTP
// response. Local deadline expiry and network-level timeouts become
// AuthUpstreamTimeout; everything else is AuthUpstreamUnavailable.
func classifyTransport(service string, err error) *domain.AuthError {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(service)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return timeoutError(service)
	}
	return &domain.AuthError{
		Kind:    domain.AuthUpstreamUnavailable,
		Message: "Upstream error from " + service,
		Detail:  err.Error(),
	}
}

// classifyStatus maps a non-2xx response. statusLine is the full HTTP status
// line ("502 Bad Gateway") and is surfaced for diagnosis on 500-class
// responses only.
func classifyStatus(service string, statusCode int, statusLine string) *domain.AuthError {
	if statusCode == http.StatusGatewayTimeout {
		return timeoutError(service)
	}
	return &domain.AuthError{
		Kind:    domain.AuthUpstreamUnavailable,
		Message: "Upstream error from " + service,
		Detail:  statusLine,
	}
}

// malformedResponse covers 2xx responses whose body cannot be decoded or is
// missing required fields.
func malformedResponse(service string, detail string) *domain.AuthError {
	return &domain.AuthError{
		Kind:    domain.AuthUpstreamUnavailable,
		Message: "Upstream error from " + service,
		Detail:  detail,
	}
}

func timeoutError(service string) *domain.AuthError {
	return &domain.AuthError{
		Kind:    domain.AuthUpstreamTimeout,
		Message: "Upstream timeout in " + service,
	}
}
