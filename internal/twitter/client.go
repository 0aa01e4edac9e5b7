package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/uederson-ferreira/social-fi-credit/internal/platform/retry"
)

const (
	defaultBaseURL = "https://api.twitter.com"
	requestTimeout = 30 * time.Second
	maxSearchSize  = 100
)

// Client is a minimal Twitter API v2 client using app-only bearer auth.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	bearerToken string
	retryPolicy retry.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithClock injects the clock used for retry backoff.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.retryPolicy.Clock = clock }
}

func NewClient(bearerToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		baseURL:     defaultBaseURL,
		bearerToken: bearerToken,
		retryPolicy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   500 * time.Millisecond,
			RateLimitBackoff: 5 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusError carries the HTTP status so retry classification can
// distinguish rate limits from hard failures.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("twitter API returned %d: %s", e.StatusCode, e.Body)
}

func classifyStatus(err error) retry.Action {
	var se *statusError
	if !errors.As(err, &se) {
		return retry.Retry // transport-level failure
	}
	switch {
	case se.StatusCode == http.StatusTooManyRequests:
		return retry.After
	case se.StatusCode >= 500:
		return retry.Retry
	default:
		return retry.Stop
	}
}

// doJSON performs one authorized request and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// getJSON wraps doJSON in the retry policy.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	return retry.DoVoid(ctx, c.retryPolicy, classifyStatus, func() error {
		return c.doJSON(ctx, http.MethodGet, url, nil, out)
	})
}
