package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nik0sc/esc-ticket-service/internal/api/metrics"
	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

const (
	// HeaderSessionToken carries the caller's opaque session token, both
	// inbound from clients and outbound to the session service.
	HeaderSessionToken = "X-Parse-Session-Token"
	// headerServerToken authenticates this service to the session service.
	headerServerToken = "Server-Token"

	serviceSession = "session service"

	// codeInvalidSession is the provider error code reported alongside a 400
	// when a session token is invalid or expired.
	codeInvalidSession = 209

	defaultTimeout = 3 * time.Second
)

// SessionConfig captures the settings for the session service client.
type SessionConfig struct {
	BaseURL     string
	ServerToken string
	// Timeout bounds one verification call end to end. Defaults to 3s.
	Timeout time.Duration
}

// SessionClient verifies session tokens against the external session
// service. It is immutable after construction and safe for concurrent use;
// no per-request state is stored on the client.
type SessionClient struct {
	baseURL     string
	serverToken string
	client      *http.Client
}

func NewSessionClient(cfg SessionConfig) *SessionClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SessionClient{
		baseURL:     cfg.BaseURL,
		serverToken: cfg.ServerToken,
		client:      &http.Client{Timeout: timeout},
	}
}

// sessionResponse mirrors the session service's GET /sessions/me body.
type sessionResponse struct {
	User struct {
		ObjectID string `json:"objectId"`
		Username string `json:"username"`
	} `json:"user"`
}

// sessionErrorResponse mirrors the provider error body on rejection.
type sessionErrorResponse struct {
	Code int `json:"code"`
}

// Verify exchanges token for the caller's identity with a single upstream
// call. An empty token is a caller error and never reaches the wire.
func (c *SessionClient) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrNoSessionToken()
	}

	start := time.Now()
	identity, err := c.verify(ctx, token)
	metrics.UpstreamRequestDuration.WithLabelValues("session").Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues("session", outcomeLabel(err)).Inc()
	return identity, err
}

func (c *SessionClient) verify(ctx context.Context, token string) (*domain.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/sessions/me", nil)
	if err != nil {
		return nil, classifyTransport(serviceSession, err)
	}
	req.Header.Set(HeaderSessionToken, token)
	req.Header.Set(headerServerToken, c.serverToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransport(serviceSession, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var body sessionResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, malformedResponse(serviceSession, "undecodable session body")
		}
		if body.User.ObjectID == "" {
			return nil, malformedResponse(serviceSession, "session body missing user objectId")
		}
		return &domain.Identity{
			UserObjectID: body.User.ObjectID,
			Username:     body.User.Username,
		}, nil
	}

	// The explicit token-rejection signal: 400 plus provider code 209.
	if resp.StatusCode == http.StatusBadRequest {
		var body sessionErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Code == codeInvalidSession {
			return nil, &domain.AuthError{Kind: domain.AuthInvalidToken, Message: "Invalid session token"}
		}
	}

	return nil, classifyStatus(serviceSession, resp.StatusCode, resp.Status)
}

// outcomeLabel maps a classification to the metric outcome label.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	switch kind, _ := domain.AuthKind(err); kind {
	case domain.AuthInvalidToken:
		return "invalid_token"
	case domain.AuthUpstreamTimeout:
		return "timeout"
	case domain.AuthIdentityNotFound:
		return "not_found"
	default:
		return "unavailable"
	}
}
