// Package httpx is the shared HTTP core for vendor catalog and product-page
// clients: timeouts, per-host rate limiting, and classification of failures
// into the pipeline's error taxonomy. Retry policy lives with the callers.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

// Options configures the shared HTTP client.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	RateLimiters map[string]*rate.Limiter
}

// Client wraps net/http with per-host rate limiting and taxonomy-aware
// status handling. A single Do performs exactly one network attempt.
type Client struct {
	http     *http.Client
	ua       string
	limiters map[string]*rate.Limiter
	fallback *rate.Limiter
}

// New creates a Client with the given options.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "optical-pipeline/1.0"
	}
	limiters := make(map[string]*rate.Limiter)
	for k, v := range opts.RateLimiters {
		limiters[k] = v
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		ua:       opts.UserAgent,
		limiters: limiters,
		fallback: rate.NewLimiter(10, 10),
	}
}

// WithHTTPClient overrides the underlying http.Client (for testing).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func (c *Client) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return c.fallback
	}
	if lim, ok := c.limiters[u.Host]; ok {
		return lim
	}
	return c.fallback
}

// Do executes one request attempt and returns the response body. Failures
// are classified: 404 becomes a NotFoundError, 408/429/5xx and transport
// errors become TransientError, anything else non-2xx is a plain error.
func (c *Client) Do(ctx context.Context, req *http.Request) ([]byte, error) {
	if err := c.limiterFor(req.URL.String()).Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "httpx: rate limiter wait")
	}

	req = req.Clone(ctx)
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "httpx: request"), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "httpx: read body"), resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, resilience.NewNotFoundError(req.URL.String())
	case resilience.IsTransientHTTPStatus(resp.StatusCode):
		return nil, resilience.NewTransientError(
			eris.Errorf("httpx: status %d from %s", resp.StatusCode, req.URL.String()),
			resp.StatusCode,
		)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, eris.Errorf("httpx: unexpected status %d from %s", resp.StatusCode, req.URL.String())
	}

	return body, nil
}

// GetJSON issues a GET and unmarshals the JSON response into out.
// A malformed payload is reported as transient: vendor gateways emit
// truncated bodies under load and a retry usually succeeds.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "httpx: create request")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	body, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resilience.NewTransientError(eris.Wrap(err, "httpx: unmarshal response"), 0)
	}
	return nil
}

// PostJSON issues a POST with a JSON body and unmarshals the JSON response.
func (c *Client) PostJSON(ctx context.Context, rawURL string, headers map[string]string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return eris.Wrap(err, "httpx: marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "httpx: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	body, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resilience.NewTransientError(eris.Wrap(err, "httpx: unmarshal response"), 0)
	}
	return nil
}

// Get issues a GET and returns the raw body (product-page HTML).
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "httpx: create request")
	}
	return c.Do(ctx, req)
}
