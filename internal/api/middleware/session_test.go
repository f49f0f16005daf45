package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
	"github.com/nik0sc/esc-ticket-service/internal/upstream"
)

type stubVerifier struct {
	identity *domain.Identity
	err      error
	calls    int
	lastTok  string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	s.calls++
	s.lastTok = token
	return s.identity, s.err
}

func runSession(t *testing.T, verifier *stubVerifier, token string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ticket", nil)
	if token != "" {
		req.Header.Set(upstream.HeaderSessionToken, token)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	next := func(c echo.Context) error { return nil }
	return c, Session(verifier)(next)(c)
}

func TestSession_MissingToken(t *testing.T) {
	verifier := &stubVerifier{}
	_, err := runSession(t, verifier, "")
	if !domain.IsAuthKind(err, domain.AuthMissingToken) {
		t.Fatalf("expected missing token, got %v", err)
	}
	if verifier.calls != 0 {
		t.Fatalf("missing token must not reach the verifier, got %d calls", verifier.calls)
	}
}

func TestSession_ValidToken(t *testing.T) {
	verifier := &stubVerifier{identity: &domain.Identity{UserObjectID: "U1", Username: "alice"}}
	c, err := runSession(t, verifier, "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verifier.calls != 1 || verifier.lastTok != "tok-1" {
		t.Fatalf("verifier not called with the header token: calls=%d token=%q", verifier.calls, verifier.lastTok)
	}
	identity, ok := c.Get(IdentityKey).(*domain.Identity)
	if !ok || identity.UserObjectID != "U1" {
		t.Fatalf("identity not stored on context: %v", c.Get(IdentityKey))
	}
}

func TestSession_VerifierErrorPropagates(t *testing.T) {
	verifier := &stubVerifier{err: &domain.AuthError{Kind: domain.AuthInvalidToken, Message: "Invalid session token"}}
	_, err := runSession(t, verifier, "expired")
	if !domain.IsAuthKind(err, domain.AuthInvalidToken) {
		t.Fatalf("expected invalid token to propagate, got %v", err)
	}
}
