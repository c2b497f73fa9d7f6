package boom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/property-search/internal/apierror"
	"github.com/donaldgifford/property-search/internal/metrics"
)

// MockModeMessage is returned in place of listings when no credentials are
// configured.
const MockModeMessage = "Search function not yet implemented (Mock mode - Boom credentials not configured)"

// Client implements HouseSearcher against the Boom listings endpoint.
type Client struct {
	tokens  TokenProvider
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the default Boom API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a new Boom listings client.
func NewClient(tokens TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		tokens:  tokens,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type mockResult struct {
	City    string            `json:"city"`
	Results []json.RawMessage `json:"results"`
	Message string            `json:"message"`
}

type listingsSummary struct {
	Listings []json.RawMessage `json:"listings"`
}

type upstreamError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SearchHouses implements HouseSearcher. Without credentials it answers with
// an empty mock result and makes no outbound call.
func (c *Client) SearchHouses(
	ctx context.Context,
	city string,
	page int,
) (json.RawMessage, error) {
	if page < 1 {
		page = 1
	}

	if !c.tokens.Configured() {
		c.log.Info("searching houses in mock mode, Boom credentials not configured", "city", city)
		metrics.MockModeSearchesTotal.Inc()
		return json.Marshal(mockResult{
			City:    city,
			Results: []json.RawMessage{},
			Message: MockModeMessage,
		})
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("auth_error").Inc()
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	c.log.Debug("searching houses", "city", city, "page", page)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.buildListingsURL(city, page),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("unavailable").Inc()
		c.log.Error("Boom API unreachable", "city", city, "error", err)
		return nil, apierror.UpstreamUnavailable("Failed to search houses", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("unavailable").Inc()
		return nil, apierror.UpstreamUnavailable("Failed to search houses", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.mapStatus(resp.StatusCode, body)
	}

	if !json.Valid(body) {
		metrics.UpstreamRequestsTotal.WithLabelValues("server_error").Inc()
		return nil, apierror.UpstreamServer(
			"Boom API server error",
			fmt.Errorf("listings response is not valid JSON"),
		)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("ok").Inc()

	var summary listingsSummary
	if err := json.Unmarshal(body, &summary); err == nil {
		c.log.Info("found listings", "city", city, "page", page, "count", len(summary.Listings))
	}

	return json.RawMessage(body), nil
}

func (c *Client) mapStatus(status int, body []byte) error {
	var upstream upstreamError
	_ = json.Unmarshal(body, &upstream) //nolint:errcheck // best-effort error parsing

	switch {
	case status == http.StatusUnauthorized:
		c.tokens.Invalidate()
		metrics.TokenInvalidationsTotal.WithLabelValues("unauthorized").Inc()
		metrics.UpstreamRequestsTotal.WithLabelValues("unauthorized").Inc()
		c.log.Warn("Boom API rejected access token, token cleared")
		return apierror.Authentication(
			"Authentication failed with Boom API",
			fmt.Errorf("listings request failed (status %d)", status),
		)
	case status == http.StatusNotFound:
		metrics.UpstreamRequestsTotal.WithLabelValues("not_found").Inc()
		return apierror.NotFound("No listings found for the specified city")
	case status >= 400 && status < 500:
		metrics.UpstreamRequestsTotal.WithLabelValues("client_error").Inc()
		msg := upstream.Message
		if msg == "" {
			msg = upstream.Error
		}
		if msg == "" {
			msg = "Boom API error"
		}
		return apierror.BadUpstreamRequest(status, msg)
	default:
		metrics.UpstreamRequestsTotal.WithLabelValues("server_error").Inc()
		c.log.Error("Boom API server error", "status", status)
		return apierror.UpstreamServer(
			"Boom API server error",
			fmt.Errorf("listings request failed (status %d): %s", status, string(body)),
		)
	}
}

func (c *Client) buildListingsURL(city string, page int) string {
	params := url.Values{}
	params.Set("city", city)
	params.Set("page", strconv.Itoa(page))
	return c.baseURL + "/listings?" + params.Encode()
}
