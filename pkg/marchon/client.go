// Package marchon provides a client for the Marchon catalog search API.
//
// Marchon's search endpoint is served by several regional gateways that
// disagree on field names (upc vs upcCode vs barcode, colorCode vs color).
// Record normalizes those variants into a single canonical shape at decode
// time so nothing downstream has to probe alternatives.
package marchon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

// Client defines the Marchon catalog operations.
type Client interface {
	// Search queries the catalog and returns normalized records.
	Search(ctx context.Context, query string) ([]Record, error)
}

// Record is a schema-normalized catalog record.
type Record struct {
	StyleName string
	Brand     string
	ColorCode string
	ColorName string
	Eye       string
	Bridge    string
	Temple    string
	UPC       string
	Material  string
	Gender    string
	Status    string
	Price     float64
}

// UnmarshalJSON accepts any of the gateway field-name variants.
func (rec *Record) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}

	rec.StyleName = firstString(m, "styleName", "style_name", "style", "modelName")
	rec.Brand = firstString(m, "brand", "brandName", "collection")
	rec.ColorCode = firstString(m, "colorCode", "color_code", "colourCode")
	rec.ColorName = firstString(m, "colorName", "colorDescription", "color")
	rec.Eye = firstString(m, "eye", "eyeSize", "lensSize", "a")
	rec.Bridge = firstString(m, "bridge", "bridgeSize", "dbl")
	rec.Temple = firstString(m, "temple", "templeLength")
	rec.UPC = firstString(m, "upc", "upcCode", "barcode")
	rec.Material = firstString(m, "material", "frontMaterial")
	rec.Gender = firstString(m, "gender", "targetGender")
	rec.Status = firstString(m, "status", "availability", "stockStatus")
	rec.Price = firstFloat(m, "price", "wholesalePrice", "whsPrice")

	return nil
}

// firstString returns the first present key, accepting JSON strings and
// numbers (eye sizes arrive as either).
func firstString(m map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		raw, ok := m[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	return ""
}

func firstFloat(m map[string]json.RawMessage, keys ...string) float64 {
	for _, k := range keys {
		raw, ok := m[k]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return n
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

type searchResponse struct {
	Results []Record `json:"results"`
}

// Option configures the Marchon client.
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

// NewClient creates a Marchon catalog client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://catalog.marchon.com",
		http:    httpx.New(httpx.Options{}),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.OnRetry = resilience.RetryLogger("marchon", "search")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) ([]Record, error) {
	reqURL := fmt.Sprintf("%s/api/v1/search?q=%s", c.baseURL, url.QueryEscape(query))

	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*searchResponse, error) {
		var out searchResponse
		if err := c.http.GetJSON(ctx, reqURL, nil, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "marchon: search %q", query)
	}

	return resp.Results, nil
}
