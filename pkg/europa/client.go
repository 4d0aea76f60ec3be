// Package europa provides a client for the Europa Eyewear catalog search
// and product pages. Search is the primary path; when it yields nothing the
// caller derives a product-page slug and reads the DOM, whose variant rows
// carry measurements and UPCs in data attributes.
package europa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Cloud-payto/optical-sub002/internal/htmltable"
	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

// Client defines the Europa catalog operations.
type Client interface {
	// Search queries the catalog search endpoint by style name.
	Search(ctx context.Context, query string) ([]Record, error)
	// FetchProduct reads a product page addressed by slug and returns the
	// variants encoded in its DOM. 404 surfaces as NotFoundError.
	FetchProduct(ctx context.Context, slug string) ([]Record, error)
}

// Record is one catalog variant.
type Record struct {
	StyleName string  `json:"style"`
	Brand     string  `json:"brand"`
	ColorCode string  `json:"colorCode"`
	ColorName string  `json:"colorName"`
	Eye       string  `json:"eye"`
	Bridge    string  `json:"bridge"`
	Temple    string  `json:"temple"`
	UPC       string  `json:"upc"`
	Material  string  `json:"material"`
	Gender    string  `json:"gender"`
	InStock   bool    `json:"inStock"`
	Price     float64 `json:"price"`
}

type searchResponse struct {
	Frames []Record `json:"frames"`
}

// Option configures the Europa client.
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

// NewClient creates a Europa catalog client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://www.europaeye.com",
		http:    httpx.New(httpx.Options{}),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.OnRetry = resilience.RetryLogger("europa", "lookup")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) ([]Record, error) {
	reqURL := fmt.Sprintf("%s/api/frames?search=%s", c.baseURL, url.QueryEscape(query))

	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*searchResponse, error) {
		var out searchResponse
		if err := c.http.GetJSON(ctx, reqURL, nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "europa: search %q", query)
	}

	return resp.Frames, nil
}

func (c *httpClient) FetchProduct(ctx context.Context, slug string) ([]Record, error) {
	pageURL := fmt.Sprintf("%s/frames/%s", c.baseURL, url.PathEscape(slug))

	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		return c.http.Get(ctx, pageURL)
	})
	if err != nil {
		if resilience.IsNotFound(err) {
			return nil, resilience.NewNotFoundError(slug)
		}
		return nil, eris.Wrapf(err, "europa: fetch product %s", slug)
	}

	records, err := parseProductPage(string(body))
	if err != nil {
		return nil, eris.Wrapf(err, "europa: parse product page %s", slug)
	}
	return records, nil
}

// parseProductPage reads variant rows from the page DOM. Each variant is an
// element with a data-upc attribute; the remaining attributes follow the
// same data-* convention.
func parseProductPage(page string) ([]Record, error) {
	root, err := htmltable.Parse(page)
	if err != nil {
		return nil, eris.Wrap(err, "parse html")
	}

	var records []Record
	for _, li := range htmltable.FindAll(root, "li") {
		upc := htmltable.Attr(li, "data-upc")
		if upc == "" {
			continue
		}
		rec := Record{
			UPC:       upc,
			StyleName: htmltable.Attr(li, "data-style"),
			ColorCode: htmltable.Attr(li, "data-color-code"),
			ColorName: htmltable.Attr(li, "data-color"),
			Eye:       htmltable.Attr(li, "data-eye"),
			Bridge:    htmltable.Attr(li, "data-bridge"),
			Temple:    htmltable.Attr(li, "data-temple"),
			Material:  htmltable.Attr(li, "data-material"),
			Gender:    htmltable.Attr(li, "data-gender"),
			InStock:   strings.EqualFold(htmltable.Attr(li, "data-stock"), "in"),
		}
		if p := htmltable.Attr(li, "data-price"); p != "" {
			if f, err := strconv.ParseFloat(p, 64); err == nil {
				rec.Price = f
			}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, eris.New("no variant rows in page")
	}
	return records, nil
}
