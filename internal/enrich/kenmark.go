package enrich

import (
	"context"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/matcher"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/pkg/kenmark"
)

// Kenmark enriches via the catalog search API.
type Kenmark struct {
	client        kenmark.Client
	store         cache.Cache
	weights       matcher.Weights
	minConfidence int
}

func NewKenmark(client kenmark.Client, store cache.Cache, minConfidence int) *Kenmark {
	return &Kenmark{
		client:        client,
		store:         store,
		weights:       matcher.For("kenmark"),
		minConfidence: minConfidence,
	}
}

func (e *Kenmark) Vendor() string { return "kenmark" }

func (e *Kenmark) Enrich(ctx context.Context, item model.LineItem) model.EnrichmentOutcome {
	cands, fromCache, err := fetchCandidates(ctx, e.store, item.Model, func(ctx context.Context) ([]model.CandidateVariant, error) {
		frames, err := e.client.Search(ctx, item.Model)
		if err != nil {
			return nil, err
		}
		return kenmarkCandidates(frames), nil
	})
	if err != nil {
		return failure(model.StrategySearch, err)
	}

	match := matcher.Match(item, cands, e.weights, e.minConfidence)
	return resolved(model.StrategySearch, match, fromCache)
}

func kenmarkCandidates(frames []kenmark.Frame) []model.CandidateVariant {
	out := make([]model.CandidateVariant, 0, len(frames))
	for _, f := range frames {
		out = append(out, model.CandidateVariant{
			StyleName:      f.StyleName,
			Brand:          f.Brand,
			ColorCode:      f.ColorCode,
			ColorName:      f.ColorName,
			EyeSize:        f.Eye,
			Bridge:         f.Bridge,
			Temple:         f.Temple,
			UPC:            f.UPC,
			Material:       f.Material,
			Gender:         f.Gender,
			StockStatus:    f.StockStatus,
			InStock:        f.StockStatus == "In Stock",
			WholesalePrice: f.Wholesale,
		})
	}
	return out
}
