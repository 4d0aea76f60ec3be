package enrich

import (
	"context"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/matcher"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/pkg/marchon"
)

// Marchon enriches via the catalog search API. The client already
// normalizes the response's per-record field-name variants into one
// canonical record shape.
type Marchon struct {
	client        marchon.Client
	store         cache.Cache
	weights       matcher.Weights
	minConfidence int
}

func NewMarchon(client marchon.Client, store cache.Cache, minConfidence int) *Marchon {
	return &Marchon{
		client:        client,
		store:         store,
		weights:       matcher.For("marchon"),
		minConfidence: minConfidence,
	}
}

func (e *Marchon) Vendor() string { return "marchon" }

func (e *Marchon) Enrich(ctx context.Context, item model.LineItem) model.EnrichmentOutcome {
	cands, fromCache, err := fetchCandidates(ctx, e.store, item.Model, func(ctx context.Context) ([]model.CandidateVariant, error) {
		records, err := e.client.Search(ctx, item.Model)
		if err != nil {
			return nil, err
		}
		return marchonCandidates(records), nil
	})
	if err != nil {
		return failure(model.StrategySearch, err)
	}

	match := matcher.Match(item, cands, e.weights, e.minConfidence)
	return resolved(model.StrategySearch, match, fromCache)
}

func marchonCandidates(records []marchon.Record) []model.CandidateVariant {
	out := make([]model.CandidateVariant, 0, len(records))
	for _, r := range records {
		out = append(out, model.CandidateVariant{
			StyleName:      r.StyleName,
			Brand:          r.Brand,
			Material:       r.Material,
			Gender:         r.Gender,
			ColorCode:      r.ColorCode,
			ColorName:      r.ColorName,
			EyeSize:        r.Eye,
			Bridge:         r.Bridge,
			Temple:         r.Temple,
			UPC:            r.UPC,
			StockStatus:    r.Status,
			InStock:        r.Status == "IN_STOCK",
			WholesalePrice: r.Price,
		})
	}
	return out
}
