package enrich

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/matcher"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
	"github.com/Cloud-payto/optical-sub002/pkg/europa"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Europa enriches via catalog search first; when the search comes back
// empty it falls through to the style's product page, whose DOM carries
// the variant data.
type Europa struct {
	client        europa.Client
	store         cache.Cache
	weights       matcher.Weights
	minConfidence int
}

func NewEuropa(client europa.Client, store cache.Cache, minConfidence int) *Europa {
	return &Europa{
		client:        client,
		store:         store,
		weights:       matcher.For("europa"),
		minConfidence: minConfidence,
	}
}

func (e *Europa) Vendor() string { return "europa" }

func (e *Europa) Enrich(ctx context.Context, item model.LineItem) model.EnrichmentOutcome {
	cands, fromCache, err := fetchCandidates(ctx, e.store, "search "+item.Model, func(ctx context.Context) ([]model.CandidateVariant, error) {
		records, err := e.client.Search(ctx, item.Model)
		if err != nil {
			return nil, err
		}
		return europaCandidates(records), nil
	})
	if err != nil {
		return failure(model.StrategySearch, err)
	}

	if len(cands) > 0 {
		match := matcher.Match(item, cands, e.weights, e.minConfidence)
		return resolved(model.StrategySearch, match, fromCache)
	}

	slug := Slug(item.Model)
	zap.L().Debug("europa search empty, falling back to product page",
		zap.String("model", item.Model), zap.String("slug", slug))

	cands, fromCache, err = fetchCandidates(ctx, e.store, "page "+slug, func(ctx context.Context) ([]model.CandidateVariant, error) {
		records, err := e.client.FetchProduct(ctx, slug)
		if err != nil {
			return nil, err
		}
		return europaCandidates(records), nil
	})
	if err != nil {
		if resilience.IsNotFound(err) {
			return model.EnrichmentOutcome{
				Strategy:  model.StrategyNone,
				ErrReason: "style not present in catalog search or product pages",
			}
		}
		return failure(model.StrategyPage, err)
	}

	match := matcher.Match(item, cands, e.weights, e.minConfidence)
	return resolved(model.StrategyPage, match, fromCache)
}

// Slug derives the product-page path segment from a style name.
func Slug(styleName string) string {
	s := slugRe.ReplaceAllString(strings.ToLower(styleName), "-")
	return strings.Trim(s, "-")
}

func europaCandidates(records []europa.Record) []model.CandidateVariant {
	out := make([]model.CandidateVariant, 0, len(records))
	for _, r := range records {
		out = append(out, model.CandidateVariant{
			StyleName:      r.StyleName,
			Brand:          r.Brand,
			ColorCode:      r.ColorCode,
			ColorName:      r.ColorName,
			EyeSize:        r.Eye,
			Bridge:         r.Bridge,
			Temple:         r.Temple,
			UPC:            r.UPC,
			Material:       r.Material,
			Gender:         r.Gender,
			InStock:        r.InStock,
			WholesalePrice: r.Price,
		})
	}
	return out
}
