package jira

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// transportConfig configures the HTTP layer.
type transportConfig struct {
	Transport  http.RoundTripper // Injected by tests
	BaseURL    string
	Username   string
	Password   string
	UserAgent  string
	Timeout    time.Duration
	RateLimit  float64
	MaxRetries int
	RateBurst  int
}

// transport is a rate-limited, retrying HTTP client bound to one server.
type transport struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      transportConfig
}

func newTransport(cfg transportConfig) *transport {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 10.0
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = 5
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "jira-attach"
	}
	return &transport{
		config: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	}
}

// request is one HTTP request. Body is a byte slice so retries can resend it.
type request struct {
	Headers map[string]string
	Query   url.Values
	Method  string
	Path    string // Relative to the base URL, or an absolute URL
	Body    []byte
}

// response is a fully read HTTP response.
type response struct {
	Headers    http.Header
	Body       []byte
	StatusCode int
}

// HTTPError represents an HTTP error response.
type HTTPError struct {
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	if msg == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

// IsRateLimited returns true if this is a rate limit error.
func (e *HTTPError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true if this is a server error.
func (e *HTTPError) IsServerError() bool {
	return e.StatusCode >= 500
}

// isRetryable determines if an error should be retried.
func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.IsRateLimited() || httpErr.IsServerError()
	}
	return false
}

// statusCode extracts the HTTP status of err, or 0.
func statusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// do executes a request with rate limiting and retry.
func (t *transport) do(ctx context.Context, req *request) (*response, error) {
	var lastErr error
	for attempt := 0; attempt <= t.config.MaxRetries; attempt++ {
		if err := t.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := t.doOnce(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == t.config.MaxRetries {
			break
		}

		// Exponential backoff
		backoff := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if t.config.MaxRetries > 0 && isRetryable(lastErr) {
		return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return nil, lastErr
}

// resolve builds the full URL of a request path.
func (t *transport) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(t.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// sameOrigin reports whether u points at the configured server.
// Credentials are only sent there.
func (t *transport) sameOrigin(u *url.URL) bool {
	base, err := url.Parse(t.config.BaseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(base.Scheme, u.Scheme) && strings.EqualFold(base.Host, u.Host)
}

// doOnce executes a single request attempt.
func (t *transport) doOnce(ctx context.Context, req *request) (*response, error) {
	fullURL := t.resolve(req.Path)
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", t.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if (t.config.Username != "" || t.config.Password != "") && t.sameOrigin(httpReq.URL) {
		httpReq.SetBasicAuth(t.config.Username, t.config.Password)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	return &response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}, nil
}
