package luxottica

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
		WithAPIKey("test-key"),
		WithHTTP(httpx.New(httpx.Options{})),
		WithRetry(resilience.RetryConfig{MaxAttempts: 3, Delay: 0}),
	)
}

func TestSearchByUPC(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/catalog/search", r.URL.Path)
		assert.Equal(t, "8053672840245", r.URL.Query().Get("upc"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"modelCode":"0RX5154","brand":"Ray-Ban","colorCode":"2000","colorDescription":"Black",
			 "size":"49","bridge":"21","temple":"140","upc":"8053672840245",
			 "frontMaterial":"Acetate","availability":"AVAILABLE","listPrice":171.0}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.SearchByUPC(context.Background(), "8053672840245")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "0RX5154", items[0].ModelCode)
	assert.Equal(t, "2000", items[0].ColorCode)
	assert.Equal(t, "49", items[0].EyeSize)
	assert.InDelta(t, 171.0, items[0].ListPrice, 0.001)
}

func TestSearchByStyle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0RX5154", r.URL.Query().Get("model"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"modelCode":"0RX5154","colorCode":"2000","upc":"8053672840245"},
			{"modelCode":"0RX5154","colorCode":"2012","upc":"8053672840252"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.SearchByStyle(context.Background(), "0RX5154")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2012", items[1].ColorCode)
}

func TestSearchEmpty(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.SearchByStyle(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchRetriesTransient(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"modelCode":"0RX5154","upc":"8053672840245"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	items, err := client.SearchByUPC(context.Background(), "8053672840245")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, calls)
}

func TestSearchExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchByUPC(context.Background(), "8053672840245")
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
