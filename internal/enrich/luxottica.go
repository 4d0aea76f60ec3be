package enrich

import (
	"context"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/matcher"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/pkg/luxottica"
)

// Luxottica enriches via the catalog search API. PDF confirmations usually
// carry UPCs, so the exact-UPC query is preferred; style search covers the
// layouts that omit them.
type Luxottica struct {
	client        luxottica.Client
	store         cache.Cache
	weights       matcher.Weights
	minConfidence int
}

func NewLuxottica(client luxottica.Client, store cache.Cache, minConfidence int) *Luxottica {
	return &Luxottica{
		client:        client,
		store:         store,
		weights:       matcher.For("luxottica"),
		minConfidence: minConfidence,
	}
}

func (e *Luxottica) Vendor() string { return "luxottica" }

func (e *Luxottica) Enrich(ctx context.Context, item model.LineItem) model.EnrichmentOutcome {
	term := item.SearchKey()

	cands, fromCache, err := fetchCandidates(ctx, e.store, term, func(ctx context.Context) ([]model.CandidateVariant, error) {
		var (
			items []luxottica.Item
			err   error
		)
		if item.UPC != "" {
			items, err = e.client.SearchByUPC(ctx, item.UPC)
		} else {
			items, err = e.client.SearchByStyle(ctx, item.Model)
		}
		if err != nil {
			return nil, err
		}
		return luxotticaCandidates(items), nil
	})
	if err != nil {
		return failure(model.StrategySearch, err)
	}

	match := matcher.Match(item, cands, e.weights, e.minConfidence)
	return resolved(model.StrategySearch, match, fromCache)
}

func luxotticaCandidates(items []luxottica.Item) []model.CandidateVariant {
	out := make([]model.CandidateVariant, 0, len(items))
	for _, it := range items {
		out = append(out, model.CandidateVariant{
			StyleName:      it.ModelCode,
			Brand:          it.Brand,
			ColorCode:      it.ColorCode,
			ColorName:      it.ColorName,
			EyeSize:        it.EyeSize,
			Bridge:         it.Bridge,
			Temple:         it.Temple,
			UPC:            it.UPC,
			Material:       it.Material,
			Gender:         it.Gender,
			InStock:        it.Availability == "AVAILABLE",
			StockStatus:    it.Availability,
			WholesalePrice: it.ListPrice,
		})
	}
	return out
}
