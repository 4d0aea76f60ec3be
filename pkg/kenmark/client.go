// Package kenmark provides a client for the Kenmark Eyewear catalog search.
package kenmark

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

// Client defines the Kenmark catalog operations.
type Client interface {
	Search(ctx context.Context, style string) ([]Frame, error)
}

// Frame is one catalog variant.
type Frame struct {
	StyleName   string  `json:"styleName"`
	Brand       string  `json:"collection"`
	ColorCode   string  `json:"colorCode"`
	ColorName   string  `json:"colorName"`
	Eye         string  `json:"eyeSize"`
	Bridge      string  `json:"bridge"`
	Temple      string  `json:"temple"`
	UPC         string  `json:"upc"`
	Material    string  `json:"material"`
	Gender      string  `json:"gender"`
	StockStatus string  `json:"stockStatus"`
	Wholesale   float64 `json:"wholesale"`
}

type searchResponse struct {
	Results []Frame `json:"results"`
}

// Option configures the Kenmark client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithHTTP sets a custom transport core.
func WithHTTP(hc *httpx.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRetry overrides the retry configuration.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *httpClient) { c.retry = cfg }
}

type httpClient struct {
	baseURL string
	http    *httpx.Client
	retry   resilience.RetryConfig
}

// NewClient creates a Kenmark catalog client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://kenmarkeyewear.com",
		http:    httpx.New(httpx.Options{}),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.OnRetry = resilience.RetryLogger("kenmark", "search")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, style string) ([]Frame, error) {
	reqURL := fmt.Sprintf("%s/api/frames/search?style=%s", c.baseURL, url.QueryEscape(style))

	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*searchResponse, error) {
		var out searchResponse
		if err := c.http.GetJSON(ctx, reqURL, nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "kenmark: search %q", style)
	}

	return resp.Results, nil
}
