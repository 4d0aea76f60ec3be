// Package modernoptical provides a client for Modern Optical product pages.
//
// Modern Optical exposes no search API. Product pages are addressed by a
// stock number and carry an embedded JSON payload in a script tag, which is
// far more stable than the visual table cells around it.
package modernoptical

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"

	"github.com/Cloud-payto/optical-sub002/internal/htmltable"
	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

// productDataID is the id of the script tag carrying the product payload.
const productDataID = "product-data"

// Client defines the Modern Optical product-page operations.
type Client interface {
	// FetchProduct fetches and decodes the product page for a stock number.
	// A definitive 404 surfaces as a resilience.NotFoundError so callers
	// can try alternate stock numbers instead of retrying blindly.
	FetchProduct(ctx context.Context, stockNumber string) (*Product, error)
}

// Product is the embedded product payload.
type Product struct {
	StyleName string    `json:"style_name"`
	Brand     string    `json:"brand"`
	Variants  []Variant `json:"variants"`
}

// Variant is one color/size row of the product payload.
type Variant struct {
	ColorCode string  `json:"color_code"`
	ColorName string  `json:"color_name"`
	Eye       string  `json:"eye"`
	Bridge    string  `json:"bridge"`
	Temple    string  `json:"temple"`
	UPC       string  `json:"upc"`
	Material  string  `json:"material"`
	Gender    string  `json:"gender"`
	InStock   bool    `json:"in_stock"`
	Price     float64 `json:"price"`
}

// Option configures the Modern Optical client.
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

// NewClient creates a Modern Optical product-page client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://modernoptical.com",
		http:    httpx.New(httpx.Options{}),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.OnRetry = resilience.RetryLogger("modernoptical", "fetch product")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) FetchProduct(ctx context.Context, stockNumber string) (*Product, error) {
	pageURL := fmt.Sprintf("%s/frames/%s", c.baseURL, stockNumber)

	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.http.Get(ctx, pageURL)
	})
	if err != nil {
		if resilience.IsNotFound(err) {
			return nil, resilience.NewNotFoundError(stockNumber)
		}
		return nil, eris.Wrapf(err, "modernoptical: fetch product %s", stockNumber)
	}

	product, err := extractProduct(string(body))
	if err != nil {
		return nil, eris.Wrapf(err, "modernoptical: decode product page %s", stockNumber)
	}
	return product, nil
}

// extractProduct finds the embedded JSON payload in the page markup.
func extractProduct(page string) (*Product, error) {
	root, err := htmltable.Parse(page)
	if err != nil {
		return nil, eris.Wrap(err, "parse html")
	}

	for _, script := range htmltable.FindAll(root, "script") {
		if htmltable.Attr(script, "id") != productDataID {
			continue
		}
		if !strings.Contains(htmltable.Attr(script, "type"), "json") {
			continue
		}
		payload := scriptText(script)
		var product Product
		if err := json.Unmarshal([]byte(payload), &product); err != nil {
			return nil, eris.Wrap(err, "unmarshal embedded payload")
		}
		return &product, nil
	}

	return nil, eris.New("no embedded product payload in page")
}

func scriptText(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}
