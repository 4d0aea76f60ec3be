// Package safilo provides a client for the Safilo B2B catalog search API.
package safilo

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

// Client defines the Safilo catalog operations.
type Client interface {
	// SearchStyles queries the catalog by style name and returns every
	// matching style with its full color/size SKU list. An empty result is
	// not an error: the caller decides whether to fall back.
	SearchStyles(ctx context.Context, styleName string) ([]Style, error)
}

// Style is one catalog style with its SKUs.
type Style struct {
	StyleName string `json:"styleName"`
	Brand     string `json:"brand"`
	SKUs      []SKU  `json:"skus"`
}

// SKU is one concrete color/size combination of a style.
type SKU struct {
	ColorCode      string  `json:"colorCode"`
	ColorName      string  `json:"colorName"`
	Eye            string  `json:"eye"`
	Bridge         string  `json:"bridge"`
	Temple         string  `json:"temple"`
	UPC            string  `json:"upc"`
	Material       string  `json:"material"`
	Gender         string  `json:"gender"`
	Availability   string  `json:"availability"`
	WholesalePrice float64 `json:"wholesalePrice"`
}

type searchRequest struct {
	Filter   searchFilter `json:"filter"`
	PageSize int          `json:"pageSize"`
}

type searchFilter struct {
	StyleName string `json:"styleName"`
}

type searchResponse struct {
	Styles []Style `json:"styles"`
}

// Option configures the Safilo client.
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
	apiKey  string
	baseURL string
	http    *httpx.Client
	retry   resilience.RetryConfig
}

// NewClient creates a Safilo catalog client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://b2b.safilo.com",
		http:    httpx.New(httpx.Options{}),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.OnRetry = resilience.RetryLogger("safilo", "search")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchStyles(ctx context.Context, styleName string) ([]Style, error) {
	reqBody := searchRequest{
		Filter:   searchFilter{StyleName: styleName},
		PageSize: 50,
	}
	headers := map[string]string{"X-Api-Key": c.apiKey}
	url := fmt.Sprintf("%s/api/catalog/styles/search", c.baseURL)

	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*searchResponse, error) {
		var out searchResponse
		if err := c.http.PostJSON(ctx, url, headers, reqBody, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "safilo: search styles %q", styleName)
	}

	return resp.Styles, nil
}
