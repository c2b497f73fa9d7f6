package boom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/property-search/internal/apierror"
	"github.com/donaldgifford/property-search/internal/metrics"
)

const authFailedMessage = "Failed to authenticate with Boom API"

// TokenManager implements TokenProvider using the Boom client credentials
// endpoint. It holds at most one token and refreshes lazily once the recorded
// expiry has passed. Concurrent refreshes are collapsed into one upstream call.
type TokenManager struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
	log          *slog.Logger

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing

	refresh singleflight.Group
}

// TokenOption configures the TokenManager.
type TokenOption func(*TokenManager)

// WithAuthBaseURL overrides the default Boom API base URL.
func WithAuthBaseURL(u string) TokenOption {
	return func(m *TokenManager) {
		m.baseURL = u
	}
}

// WithAuthHTTPClient overrides the default HTTP client.
func WithAuthHTTPClient(c *http.Client) TokenOption {
	return func(m *TokenManager) {
		m.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.nowFunc = f
	}
}

// WithAuthLogger sets the logger.
func WithAuthLogger(l *slog.Logger) TokenOption {
	return func(m *TokenManager) {
		m.log = l
	}
}

// NewTokenManager creates a TokenManager. Empty credentials are allowed; the
// manager then reports Configured() == false and Authenticate fails.
func NewTokenManager(clientID, clientSecret string, opts ...TokenOption) *TokenManager {
	m := &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		log:          slog.New(slog.DiscardHandler),
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Configured reports whether both client credentials are set.
func (m *TokenManager) Configured() bool {
	return m.clientID != "" && m.clientSecret != ""
}

// Token returns the held token while it is unexpired, authenticating first
// otherwise. The shared refresh is detached from any single caller's
// cancellation and bounded by the HTTP client timeout; each caller stops
// waiting when its own ctx is done.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if token, ok := m.current(); ok {
		return token, nil
	}

	refreshCtx := context.WithoutCancel(ctx)
	ch := m.refresh.DoChan("token", func() (any, error) {
		// Another caller may have refreshed while we waited on the group.
		if token, ok := m.current(); ok {
			return token, nil
		}
		return m.Authenticate(refreshCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("waiting for Boom token: %w", ctx.Err())
	}
}

func (m *TokenManager) current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.nowFunc().Before(m.expiry) {
		return m.token, true
	}
	return "", false
}

// Authenticate exchanges the client credentials for a new token and stores
// it, replacing any token already held.
func (m *TokenManager) Authenticate(ctx context.Context) (string, error) {
	if !m.Configured() {
		return "", apierror.Configuration("Boom API credentials not configured")
	}

	token, expiresIn, err := m.requestToken(ctx)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		m.log.Error("failed to authenticate with Boom API", "error", err)
		return "", apierror.Authentication(authFailedMessage, err)
	}

	m.mu.Lock()
	m.token = token
	m.expiry = m.nowFunc().Add(time.Duration(expiresIn) * time.Second)
	m.mu.Unlock()

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	m.log.Info("authenticated with Boom API", "expires_in", expiresIn)

	return token, nil
}

func (m *TokenManager) requestToken(ctx context.Context) (string, int, error) {
	payload, err := json.Marshal(tokenRequest{
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
	})
	if err != nil {
		return "", 0, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/auth/token",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", 0, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", 0, fmt.Errorf(
			"token request failed (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", 0, fmt.Errorf("parsing token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", 0, errors.New("token response has no access_token")
	}

	return tokenResp.AccessToken, tokenResp.ExpiresIn, nil
}

// Invalidate drops the held token so the next Token call authenticates.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.expiry = time.Time{}
}

// ClearExpired drops the held token if its expiry has passed and reports
// whether it did.
func (m *TokenManager) ClearExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" || m.nowFunc().Before(m.expiry) {
		return false
	}

	m.token = ""
	m.expiry = time.Time{}
	return true
}

// Expiry returns the expiry of the held token, or the zero time when none is
// held.
func (m *TokenManager) Expiry() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expiry
}
