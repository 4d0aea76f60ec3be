package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
	"github.com/Cloud-payto/optical-sub002/pkg/europa"
)

type fakeEuropaClient struct {
	searchRecords []europa.Record
	searchErr     error
	pageRecords   map[string][]europa.Record
	pageCalls     []string
}

func (f *fakeEuropaClient) Search(ctx context.Context, query string) ([]europa.Record, error) {
	return f.searchRecords, f.searchErr
}

func (f *fakeEuropaClient) FetchProduct(ctx context.Context, slug string) ([]europa.Record, error) {
	f.pageCalls = append(f.pageCalls, slug)
	if recs, ok := f.pageRecords[slug]; ok {
		return recs, nil
	}
	return nil, resilience.NewNotFoundError(slug)
}

func europaItem() model.LineItem {
	return model.LineItem{
		Brand:     "Scott Harris",
		Model:     "SH-620",
		ColorCode: "01",
		ColorName: "Black",
		EyeSize:   "52",
		Quantity:  1,
	}
}

func TestEuropaEnrichSearchHit(t *testing.T) {
	t.Parallel()

	client := &fakeEuropaClient{searchRecords: []europa.Record{
		{StyleName: "SH-620", ColorCode: "01", ColorName: "Black", Eye: "52", UPC: "712345678901"},
	}}

	e := NewEuropa(client, cache.NewMemory(), 0)
	out := e.Enrich(context.Background(), europaItem())

	require.False(t, out.Failed())
	assert.Equal(t, model.StrategySearch, out.Strategy)
	require.NotNil(t, out.Match.Variant)
	assert.Equal(t, "712345678901", out.Match.Variant.UPC)
	assert.Empty(t, client.pageCalls)
}

func TestEuropaEnrichPageFallback(t *testing.T) {
	t.Parallel()

	// Empty search result falls through to the derived product page.
	client := &fakeEuropaClient{pageRecords: map[string][]europa.Record{
		"sh-620": {{StyleName: "SH-620", ColorCode: "01", Eye: "52", UPC: "712345678901"}},
	}}

	e := NewEuropa(client, cache.NewMemory(), 0)
	out := e.Enrich(context.Background(), europaItem())

	require.False(t, out.Failed())
	assert.Equal(t, model.StrategyPage, out.Strategy)
	assert.Equal(t, []string{"sh-620"}, client.pageCalls)
	require.NotNil(t, out.Match.Variant)
	assert.Equal(t, "712345678901", out.Match.Variant.UPC)
}

func TestEuropaEnrichNothingAnywhere(t *testing.T) {
	t.Parallel()

	client := &fakeEuropaClient{}
	e := NewEuropa(client, cache.NewMemory(), 0)
	out := e.Enrich(context.Background(), europaItem())

	assert.True(t, out.Failed())
	assert.Equal(t, model.StrategyNone, out.Strategy)
}

func TestEuropaEnrichSearchNetworkFailure(t *testing.T) {
	t.Parallel()

	client := &fakeEuropaClient{searchErr: resilience.NewTransientError(assert.AnError, 502)}
	e := NewEuropa(client, cache.NewMemory(), 0)
	out := e.Enrich(context.Background(), europaItem())

	require.True(t, out.Failed())
	assert.Equal(t, model.StrategySearch, out.Strategy)
	// A transport failure on search is terminal for the item; the page
	// fallback is reserved for definitive empty results.
	assert.Empty(t, client.pageCalls)
}

func TestSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sh-620", Slug("SH-620"))
	assert.Equal(t, "cassidy", Slug("Cassidy"))
	assert.Equal(t, "big-sky-2", Slug("  Big Sky 2! "))
}
