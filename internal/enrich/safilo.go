package enrich

import (
	"context"
	"fmt"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/matcher"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/pkg/safilo"
)

// Safilo enriches via the Safilo catalog search API. Search is by style
// name; the UPC lifted from the document's image URLs then anchors the
// match against the returned SKUs.
type Safilo struct {
	client        safilo.Client
	store         cache.Cache
	weights       matcher.Weights
	minConfidence int
}

func NewSafilo(client safilo.Client, store cache.Cache, minConfidence int) *Safilo {
	return &Safilo{
		client:        client,
		store:         store,
		weights:       matcher.For("safilo"),
		minConfidence: minConfidence,
	}
}

func (e *Safilo) Vendor() string { return "safilo" }

func (e *Safilo) Enrich(ctx context.Context, item model.LineItem) model.EnrichmentOutcome {
	cands, fromCache, err := fetchCandidates(ctx, e.store, item.Model, func(ctx context.Context) ([]model.CandidateVariant, error) {
		styles, err := e.client.SearchStyles(ctx, item.Model)
		if err != nil {
			return nil, err
		}
		return safiloCandidates(styles), nil
	})
	if err != nil {
		return failure(model.StrategySearch, err)
	}

	match := matcher.Match(item, cands, e.weights, e.minConfidence)
	return resolved(model.StrategySearch, match, fromCache)
}

// safiloCandidates expands each style into one candidate per SKU
// (color x size combination).
func safiloCandidates(styles []safilo.Style) []model.CandidateVariant {
	var out []model.CandidateVariant
	for _, style := range styles {
		for _, sku := range style.SKUs {
			out = append(out, model.CandidateVariant{
				StyleName:      style.StyleName,
				Brand:          style.Brand,
				ColorCode:      sku.ColorCode,
				ColorName:      sku.ColorName,
				EyeSize:        sku.Eye,
				Bridge:         sku.Bridge,
				Temple:         sku.Temple,
				UPC:            sku.UPC,
				Material:       sku.Material,
				Gender:         sku.Gender,
				InStock:        sku.Availability == "AVAILABLE",
				StockStatus:    sku.Availability,
				WholesalePrice: sku.WholesalePrice,
				Attributes: map[string]string{
					"sku": fmt.Sprintf("%s-%s-%s", style.StyleName, sku.ColorCode, sku.Eye),
				},
			})
		}
	}
	return out
}
