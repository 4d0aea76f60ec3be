// Package luxottica provides a client for the Luxottica B2B catalog search.
// Orders arrive as PDF confirmations carrying UPCs, so lookups are usually
// exact UPC queries with style-name search as the looser path.
package luxottica

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

// Client defines the Luxottica catalog operations.
type Client interface {
	// SearchByUPC looks up a single variant by its exact UPC.
	SearchByUPC(ctx context.Context, upc string) ([]Item, error)
	// SearchByStyle queries the catalog by model code, e.g. "0RX5154".
	SearchByStyle(ctx context.Context, style string) ([]Item, error)
}

// Item is one catalog variant.
type Item struct {
	ModelCode    string  `json:"modelCode"`
	Brand        string  `json:"brand"`
	ColorCode    string  `json:"colorCode"`
	ColorName    string  `json:"colorDescription"`
	EyeSize      string  `json:"size"`
	Bridge       string  `json:"bridge"`
	Temple       string  `json:"temple"`
	UPC          string  `json:"upc"`
	Material     string  `json:"frontMaterial"`
	Gender       string  `json:"gender"`
	Availability string  `json:"availability"`
	ListPrice    float64 `json:"listPrice"`
}

type searchResponse struct {
	Items []Item `json:"items"`
}

// Option configures the Luxottica client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) { c.baseURL = url }
}

// WithAPIKey sets the account API key sent with each request.
func WithAPIKey(key string) Option {
	return func(c *httpClient) { c.apiKey = key }
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
	apiKey  string
	http    *httpx.Client
	retry   resilience.RetryConfig
}

// NewClient creates a Luxottica catalog client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://my.luxottica.com",
		http:    httpx.New(httpx.Options{}),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.OnRetry = resilience.RetryLogger("luxottica", "search")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchByUPC(ctx context.Context, upc string) ([]Item, error) {
	return c.search(ctx, "upc", upc)
}

func (c *httpClient) SearchByStyle(ctx context.Context, style string) ([]Item, error) {
	return c.search(ctx, "model", style)
}

func (c *httpClient) search(ctx context.Context, field, value string) ([]Item, error) {
	reqURL := fmt.Sprintf("%s/api/catalog/search?%s=%s", c.baseURL, field, url.QueryEscape(value))

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*searchResponse, error) {
		var out searchResponse
		if err := c.http.GetJSON(ctx, reqURL, headers, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "luxottica: search %s=%q", field, value)
	}

	return resp.Items, nil
}
