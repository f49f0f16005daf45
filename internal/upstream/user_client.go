package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/nik0sc/esc-ticket-service/internal/api/metrics"
	"github.com/nik0sc/esc-ticket-service/internal/core/domain"
)

const (
	serviceUser = "user service"

	// adminUserType is the numeric user_type the directory uses for
	// administrators.
	adminUserType = 2

	// userIDPrefix namespaces identity object ids in directory paths.
	userIDPrefix = "acn:"
)

// UserConfig captures the settings for the user directory client.
type UserConfig struct {
	BaseURL string
	// Timeout bounds one lookup end to end. Defaults to 3s.
	Timeout time.Duration
	Log     zerolog.Logger
}

// UserClient resolves administrator status from the external user directory.
// Immutable after construction; safe for concurrent use.
type UserClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewUserClient(cfg UserConfig) *UserClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &UserClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		log:     cfg.Log,
	}
}

// publicProfileResponse mirrors GET /user/{id}/public. The directory has
// reported the admin flag in two shapes over time: a boolean is_admin and a
// numeric user_type where 2 means administrator. Both are accepted and
// normalized into one boolean.
type publicProfileResponse struct {
	IsAdmin  *bool `json:"is_admin"`
	UserType *int  `json:"user_type"`
}

// ResolveIsAdmin performs one directory lookup for the identity's public
// profile. The result is never cached.
func (c *UserClient) ResolveIsAdmin(ctx context.Context, userObjectID string) (bool, error) {
	start := time.Now()
	isAdmin, err := c.resolve(ctx, userObjectID)
	metrics.UpstreamRequestDuration.WithLabelValues("user").Observe(time.Since(start).Seconds())
	metrics.UpstreamRequestsTotal.WithLabelValues("user", outcomeLabel(err)).Inc()
	return isAdmin, err
}

func (c *UserClient) resolve(ctx context.Context, userObjectID string) (bool, error) {
	endpoint := c.baseURL + "/user/" + url.PathEscape(userIDPrefix+userObjectID) + "/public"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, classifyTransport(serviceUser, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, classifyTransport(serviceUser, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, &domain.AuthError{Kind: domain.AuthIdentityNotFound, Message: "User not found"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, classifyStatus(serviceUser, resp.StatusCode, resp.Status)
	}

	var body publicProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, malformedResponse(serviceUser, "undecodable profile body")
	}
	return c.normalizeAdminFlag(userObjectID, body)
}

// normalizeAdminFlag reconciles the two admin-flag shapes into one boolean.
// When both fields are present and disagree, is_admin wins and the mismatch
// is logged so the directory inconsistency stays visible.
func (c *UserClient) normalizeAdminFlag(userObjectID string, body publicProfileResponse) (bool, error) {
	if body.IsAdmin == nil && body.UserType == nil {
		return false, malformedResponse(serviceUser, "profile body missing admin flag")
	}

	if body.IsAdmin != nil && body.UserType != nil {
		fromType := *body.UserType == adminUserType
		if *body.IsAdmin != fromType {
			c.log.Warn().
				Str("user_object_id", userObjectID).
				Bool("is_admin", *body.IsAdmin).
				Int("user_type", *body.UserType).
				Msg("user directory admin flags disagree, trusting is_admin")
		}
		return *body.IsAdmin, nil
	}

	if body.IsAdmin != nil {
		return *body.IsAdmin, nil
	}
	return *body.UserType == adminUserType, nil
}
