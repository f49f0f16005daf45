package upstream

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

type fakeNetError struct{ timeout bool }

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.AuthErrorKind
	}{
		{"deadline exceeded", context.DeadlineExceeded, domain.AuthUpstreamTimeout},
		{"wrapped deadline", &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}, domain.AuthUpstreamTimeout},
		{"net timeout", &fakeNetError{timeout: true}, domain.AuthUpstreamTimeout},
		{"net non-timeout", &fakeNetError{timeout: false}, domain.AuthUpstreamUnavailable},
		{"connection refused", errors.New("dial tcp: connection refused"), domain.AuthUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransport("session service", tt.err)
			if got.Kind != tt.want {
				t.Fatalf("kind = %s, want %s", got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyTransportDetail(t *testing.T) {
	got := classifyTransport("user service", errors.New("dial tcp: connection refused"))
	if got.Message != "Upstream error from user service" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
	if got.Detail != "dial tcp: connection refused" {
		t.Fatalf("unexpected detail: %q", got.Detail)
	}
}

func TestClassifyStatus(t *testing.T) {
	got := classifyStatus("session service", 504, "504 Gateway Timeout")
	if got.Kind != domain.AuthUpstreamTimeout {
		t.Fatalf("504 should classify as timeout, got %s", got.Kind)
	}
	if got.Detail != "" {
		t.Fatalf("timeout must not carry a detail, got %q", got.Detail)
	}

	got = classifyStatus("session service", 502, "502 Bad Gateway")
	if got.Kind != domain.AuthUpstreamUnavailable {
		t.Fatalf("502 should classify as unavailable, got %s", got.Kind)
	}
	if got.Detail != "502 Bad Gateway" {
		t.Fatalf("status line not surfaced: %q", got.Detail)
	}
}
