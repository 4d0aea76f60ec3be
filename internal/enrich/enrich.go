// Package enrich reconciles parsed line items against vendor catalogs. Each
// vendor adapter owns its lookup strategies (catalog search, derived
// product-page fetch), the per-run cache, and the matcher invocation, and
// reports a per-item outcome that never aborts the surrounding batch.
package enrich

import (
	"context"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/model"
)

// Enricher looks up authoritative catalog data for one line item.
type Enricher interface {
	// Vendor returns the adapter's vendor identifier.
	Vendor() string
	// Enrich resolves the item against the vendor catalog. Failures are
	// reported in the outcome, never as a panic or batch-level error.
	Enrich(ctx context.Context, item model.LineItem) model.EnrichmentOutcome
}

// fetchCandidates serves a candidate set from the per-run cache, or by
// calling fn and caching the result. Only successful lookups are cached;
// a failed lookup will be re-attempted if the same term recurs in the run.
func fetchCandidates(
	ctx context.Context,
	store cache.Cache,
	term string,
	fn func(context.Context) ([]model.CandidateVariant, error),
) (candidates []model.CandidateVariant, fromCache bool, err error) {
	key := cache.Key(term)
	if v, ok := store.Get(key); ok {
		if cands, ok := v.([]model.CandidateVariant); ok {
			return cands, true, nil
		}
	}

	cands, err := fn(ctx)
	if err != nil {
		return nil, false, err
	}
	store.Put(key, cands)
	return cands, false, nil
}

// failure wraps a terminal lookup error into an outcome.
func failure(strategy model.Strategy, err error) model.EnrichmentOutcome {
	return model.EnrichmentOutcome{Strategy: strategy, ErrReason: err.Error()}
}

// resolved builds the outcome for a completed lookup. An empty candidate
// set is reported as an errored outcome with StrategyNone so run statistics
// count it against the failure rate.
func resolved(strategy model.Strategy, match model.MatchResult, fromCache bool) model.EnrichmentOutcome {
	out := model.EnrichmentOutcome{Strategy: strategy, Match: match, FromCache: fromCache}
	if match.Variant == nil {
		out.Strategy = model.StrategyNone
		out.ErrReason = "vendor catalog returned no candidates"
	}
	return out
}
