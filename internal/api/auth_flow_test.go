package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nik0sc/esc-ticket-service/internal/api/handler"
	"github.com/nik0sc/esc-ticket-service/internal/api/middleware"
	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
	"github.com/nik0sc/esc-ticket-service/internal/core/ports"
	"github.com/nik0sc/esc-ticket-service/internal/core/service"
	"github.com/nik0sc/esc-ticket-service/internal/upstream"
)

// The stubs below replace the two upstream services and the stores so the
// full request path, middleware through error handler, can be exercised
// in-process.

type fakeVerifier struct {
	identities map[string]*domain.Identity
	err        error
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrNoSessionToken()
	}
	if f.err != nil {
		return nil, f.err
	}
	identity, ok := f.identities[token]
	if !ok {
		return nil, &domain.AuthError{Kind: domain.AuthInvalidToken, Message: "Invalid session token"}
	}
	return identity, nil
}

type fakeRoles struct {
	admins map[string]bool
	err    error
	calls  int
}

func (f *fakeRoles) ResolveIsAdmin(_ context.Context, userObjectID string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.admins[userObjectID], nil
}

type memRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64
}

func (r *memRepo) Create(_ context.Context, t *domain.Ticket) (int64, error) {
	id := r.nextID
	r.nextID++
	t.ID = id
	r.tickets[id] = t
	return id, nil
}

func (r *memRepo) FindByID(_ context.Context, id int64) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	return t, nil
}

func (r *memRepo) List(_ context.Context, filter ports.TicketFilter) ([]*domain.Ticket, error) {
	var out []*domain.Ticket
	for _, t := range r.tickets {
		if filter.OpenerUserID != "" && t.OpenerUserID != filter.OpenerUserID {
			continue
		}
		if filter.AssignedTeam != nil && (t.AssignedTeam == nil || *t.AssignedTeam != *filter.AssignedTeam) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, id int64, update ports.TicketUpdate) error {
	t, ok := r.tickets[id]
	if !ok {
		return domain.ErrTicketNotFound
	}
	if update.Message != nil {
		t.Message = *update.Message
	}
	return nil
}

type memIdem struct{ seen map[string]int64 }

func (m *memIdem) Lookup(_ context.Context, key string) (int64, bool, error) {
	id, ok := m.seen[key]
	return id, ok, nil
}

func (m *memIdem) Remember(_ context.Context, key string, ticketID int64) error {
	m.seen[key] = ticketID
	return nil
}

type testEnv struct {
	e        *echo.Echo
	verifier *fakeVerifier
	roles    *fakeRoles
	repo     *memRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	verifier := &fakeVerifier{identities: map[string]*domain.Identity{
		"owner-tok": {UserObjectID: "U1", Username: "alice"},
		"other-tok": {UserObjectID: "U2", Username: "bob"},
		"admin-tok": {UserObjectID: "U9", Username: "root"},
	}}
	roles := &fakeRoles{admins: map[string]bool{"U9": true}}
	repo := &memRepo{tickets: make(map[int64]*domain.Ticket), nextID: 1}

	access := service.NewAccessPolicy(roles, zerolog.Nop())
	svc := service.NewTicketService(repo, access, &memIdem{seen: make(map[string]int64)}, zerolog.Nop())
	tickets := handler.NewTicketHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	g := e.Group("/ticket", middleware.Session(verifier))
	g.GET("", tickets.GetAll)
	g.GET("/byUser", tickets.GetMine)
	g.GET("/byTeam/:teamId", tickets.GetByTeam)
	g.GET("/:id", tickets.GetByID)
	g.POST("", tickets.Create)
	g.PUT("/:id", tickets.Update)
	g.PUT("/:id/protected", tickets.UpdateProtected)

	return &testEnv{e: e, verifier: verifier, roles: roles, repo: repo}
}

func (env *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(upstream.HeaderSessionToken, token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("undecodable error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestFlow_MissingToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/ticket/byUser", "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeError(t, rec)["error"]; got != "No session token" {
		t.Fatalf("body error = %q", got)
	}
}

func TestFlow_InvalidToken(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/ticket/byUser", "bogus", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeError(t, rec)["error"]; got != "Invalid session token" {
		t.Fatalf("body error = %q", got)
	}
}

func TestFlow_OwnerReadsOwnTicket(t *testing.T) {
	env := newTestEnv(t)
	env.repo.tickets[1] = &domain.Ticket{ID: 1, Title: "printer", OpenerUserID: "U1"}
	env.repo.nextID = 2

	rec := env.do(http.MethodGet, "/ticket/1", "owner-tok", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if env.roles.calls != 0 {
		t.Fatalf("owner read resolved roles %d times", env.roles.calls)
	}
}

func TestFlow_NonOwnerDenied(t *testing.T) {
	env := newTestEnv(t)
	env.repo.tickets[1] = &domain.Ticket{ID: 1, OpenerUserID: "U1"}
	env.repo.nextID = 2

	rec := env.do(http.MethodGet, "/ticket/1", "other-tok", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	body := decodeError(t, rec)
	if body["error"] != "You are not authorized to view this ticket" {
		t.Fatalf("body error = %q", body["error"])
	}
	if _, leaked := body["response"]; leaked {
		t.Fatal("403 must not carry upstream detail")
	}
}

func TestFlow_AdminReadsAnyTicket(t *testing.T) {
	env := newTestEnv(t)
	env.repo.tickets[1] = &domain.Ticket{ID: 1, OpenerUserID: "U1"}
	env.repo.nextID = 2

	rec := env.do(http.MethodGet, "/ticket/1", "admin-tok", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestFlow_ListAllRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/ticket", "owner-tok", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := decodeError(t, rec)["error"]; got != "Only an admin can perform this action" {
		t.Fatalf("body error = %q", got)
	}

	rec = env.do(http.MethodGet, "/ticket", "admin-tok", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}
}

func TestFlow_TicketNotFound(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/ticket/99", "owner-tok", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec)["error"]; got != "Ticket not found" {
		t.Fatalf("body error = %q", got)
	}
}

func TestFlow_RoleLookupTimeout(t *testing.T) {
	env := newTestEnv(t)
	env.repo.tickets[1] = &domain.Ticket{ID: 1, OpenerUserID: "U1"}
	env.repo.nextID = 2
	env.roles.err = &domain.AuthError{Kind: domain.AuthUpstreamTimeout, Message: "Upstream timeout in user service"}

	rec := env.do(http.MethodGet, "/ticket/1", "other-tok", "")
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", rec.Code)
	}
	if got := decodeError(t, rec)["error"]; got != "Upstream timeout in user service" {
		t.Fatalf("body error = %q", got)
	}
}

func TestFlow_UpstreamUnavailableCarriesDetail(t *testing.T) {
	env := newTestEnv(t)
	env.verifier.err = &domain.AuthError{
		Kind:    domain.AuthUpstreamUnavailable,
		Message: "Upstream error from session service",
		Detail:  "502 Bad Gateway",
	}

	rec := env.do(http.MethodGet, "/ticket/byUser", "owner-tok", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeError(t, rec)
	if body["error"] != "Upstream error from session service" {
		t.Fatalf("body error = %q", body["error"])
	}
	if body["response"] != "502 Bad Gateway" {
		t.Fatalf("body response = %q", body["response"])
	}
}

func TestFlow_CreateTicket(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/ticket", "owner-tok", `{"title":"printer","message":"on fire"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("undecodable body: %v", err)
	}
	created := env.repo.tickets[body.ID]
	if created == nil || created.OpenerUserID != "U1" {
		t.Fatalf("ticket not created for the session identity: %+v", created)
	}
}

func TestFlow_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/ticket", "owner-tok", `{"title":"   ","message":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestFlow_UpdateMessageOwner(t *testing.T) {
	env := newTestEnv(t)
	env.repo.tickets[1] = &domain.Ticket{ID: 1, OpenerUserID: "U1", Message: "old"}
	env.repo.nextID = 2

	rec := env.do(http.MethodPut, "/ticket/1", "owner-tok", `{"message":"new"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if env.repo.tickets[1].Message != "new" {
		t.Fatalf("message not updated: %q", env.repo.tickets[1].Message)
	}
}

func TestFlow_UpdateDeniedForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	env.repo.tickets[1] = &domain.Ticket{ID: 1, OpenerUserID: "U1", Message: "old"}
	env.repo.nextID = 2

	rec := env.do(http.MethodPut, "/ticket/1", "other-tok", `{"message":"sneaky"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if got := decodeError(t, rec)["error"]; got != "You are not authorized to update this ticket" {
		t.Fatalf("body error = %q", got)
	}
	if env.repo.tickets[1].Message != "old" {
		t.Fatal("denied update mutated the ticket")
	}
}

func TestFlow_InvalidTicketID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/ticket/abc", "owner-tok", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
