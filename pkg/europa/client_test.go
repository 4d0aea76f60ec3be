package europa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-payto/optical-sub002/internal/httpx"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
)

func newTestClient(url string) Client {
	return NewClient(
		WithBaseURL(url),
		WithHTTP(httpx.New(httpx.Options{})),
		WithRetry(resilience.RetryConfig{MaxAttempts: 3, Delay: 0}),
	)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/frames", r.URL.Path)
		assert.Equal(t, "cassidy", r.URL.Query().Get("search"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"frames":[
			{"style":"Cassidy","brand":"Scott Harris","colorCode":"01","colorName":"Black","eye":"52","bridge":"18","temple":"140","upc":"712345678901","inStock":true,"price":62.5},
			{"style":"Cassidy","brand":"Scott Harris","colorCode":"02","colorName":"Tortoise","eye":"54","bridge":"18","temple":"140","upc":"712345678902","inStock":false,"price":62.5}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	records, err := client.Search(context.Background(), "cassidy")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Cassidy", records[0].StyleName)
	assert.Equal(t, "712345678901", records[0].UPC)
	assert.True(t, records[0].InStock)
	assert.False(t, records[1].InStock)
}

func TestSearchEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"frames":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	records, err := client.Search(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, records)
}

const productPage = `<html><body>
<h1>Cassidy</h1>
<ul class="variants">
  <li data-upc="712345678901" data-style="Cassidy" data-color-code="01" data-color="Black"
      data-eye="52" data-bridge="18" data-temple="140" data-material="Acetate"
      data-gender="Unisex" data-stock="in" data-price="62.50"></li>
  <li data-upc="712345678902" data-style="Cassidy" data-color-code="02" data-color="Tortoise"
      data-eye="54" data-bridge="18" data-temple="140" data-stock="out"></li>
  <li class="nav-item">Not a variant</li>
</ul>
</body></html>`

func TestFetchProduct(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/frames/cassidy", r.URL.Path)
		_, _ = w.Write([]byte(productPage))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	records, err := client.FetchProduct(context.Background(), "cassidy")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "712345678901", records[0].UPC)
	assert.Equal(t, "01", records[0].ColorCode)
	assert.Equal(t, "52", records[0].Eye)
	assert.Equal(t, "Acetate", records[0].Material)
	assert.True(t, records[0].InStock)
	assert.InDelta(t, 62.50, records[0].Price, 0.001)

	assert.Equal(t, "712345678902", records[1].UPC)
	assert.False(t, records[1].InStock)
}

func TestFetchProductNotFound(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchProduct(context.Background(), "missing-slug")
	require.Error(t, err)
	assert.True(t, resilience.IsNotFound(err))
	assert.Equal(t, 1, calls)
}

func TestFetchProductNoVariants(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Page under construction</p></body></html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchProduct(context.Background(), "cassidy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no variant rows")
}

func TestSearchRetriesTransient(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"frames":[{"style":"Cassidy","upc":"712345678901"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	records, err := client.Search(context.Background(), "cassidy")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, calls)
}
