package enrich

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Cloud-payto/optical-sub002/internal/cache"
	"github.com/Cloud-payto/optical-sub002/internal/matcher"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/internal/resilience"
	"github.com/Cloud-payto/optical-sub002/pkg/modernoptical"
)

// DefaultBridge is the bridge width assumed when the document omits one;
// it is the most common width across Modern Optical's catalog.
const DefaultBridge = "18"

// bridgeAlternates are the widths tried, in order, when the constructed
// stock number comes back 404. The vendor encodes bridge in the page path,
// and confirmations frequently omit or round it.
var bridgeAlternates = []string{"16", "17", "19", "20"}

// collectionPrefix maps a Modern Optical collection name to the stock-number
// prefix its product-page paths use.
var collectionPrefix = map[string]string{
	"attitudes":    "ATT",
	"b.m.e.c.":     "BM",
	"genevieve":    "GEN",
	"gb+":          "GBP",
	"modern times": "MT",
	"modz":         "MDZ",
	"urban":        "URB",
}

var styleNumRe = regexp.MustCompile(`(\d+)\s*$`)

// ModernOptical enriches via product pages only: the vendor exposes no
// search API, so the stock number constructed from the parsed item is the
// sole route into the catalog.
type ModernOptical struct {
	client        modernoptical.Client
	store         cache.Cache
	weights       matcher.Weights
	minConfidence int
}

func NewModernOptical(client modernoptical.Client, store cache.Cache, minConfidence int) *ModernOptical {
	return &ModernOptical{
		client:        client,
		store:         store,
		weights:       matcher.For("modernoptical"),
		minConfidence: minConfidence,
	}
}

func (e *ModernOptical) Vendor() string { return "modernoptical" }

func (e *ModernOptical) Enrich(ctx context.Context, item model.LineItem) model.EnrichmentOutcome {
	for _, bridge := range bridgeOrder(item.Bridge) {
		stockNum, err := StockNumber(item, bridge)
		if err != nil {
			return failure(model.StrategyPage, err)
		}

		cands, fromCache, err := fetchCandidates(ctx, e.store, stockNum, func(ctx context.Context) ([]model.CandidateVariant, error) {
			product, err := e.client.FetchProduct(ctx, stockNum)
			if err != nil {
				return nil, err
			}
			return modernCandidates(product), nil
		})
		if err != nil {
			// A definitive 404 means this bridge width does not exist in
			// the catalog path; move to the next width rather than retry.
			if resilience.IsNotFound(err) {
				zap.L().Debug("stock number not found, trying alternate bridge",
					zap.String("stock_number", stockNum))
				continue
			}
			return failure(model.StrategyPage, err)
		}

		match := matcher.Match(item, cands, e.weights, e.minConfidence)
		return resolved(model.StrategyPage, match, fromCache)
	}

	return model.EnrichmentOutcome{
		Strategy:  model.StrategyNone,
		ErrReason: fmt.Sprintf("no product page found for %q at any bridge width", item.Model),
	}
}

// bridgeOrder returns the bridge widths to try: the item's own width when
// stated, then the default, then the alternates, without duplicates.
func bridgeOrder(own string) []string {
	seen := make(map[string]bool)
	var order []string
	add := func(b string) {
		if b != "" && !seen[b] {
			seen[b] = true
			order = append(order, b)
		}
	}
	add(own)
	add(DefaultBridge)
	for _, b := range bridgeAlternates {
		add(b)
	}
	return order
}

// StockNumber builds the vendor's composite product-page key: collection
// prefix + numeric style suffix + color + eye/bridge.
func StockNumber(item model.LineItem, bridge string) (string, error) {
	num := strings.TrimSpace(styleNumRe.FindString(item.Model))
	if num == "" {
		return "", eris.Errorf("modernoptical: style %q has no numeric suffix", item.Model)
	}
	collection := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(item.Model), num)))

	prefix, ok := collectionPrefix[collection]
	if !ok {
		return "", eris.Errorf("modernoptical: unknown collection %q", collection)
	}

	color := item.ColorCode
	if color == "" {
		color = item.ColorName
	}
	color = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(color)), " ", "")
	if color == "" {
		return "", eris.Errorf("modernoptical: item %q has no color", item.Model)
	}

	eye := item.EyeSize
	if eye == "" {
		return "", eris.Errorf("modernoptical: item %q has no eye size", item.Model)
	}

	return fmt.Sprintf("%s%s-%s-%s-%s", prefix, num, color, eye, bridge), nil
}

func modernCandidates(product *modernoptical.Product) []model.CandidateVariant {
	out := make([]model.CandidateVariant, 0, len(product.Variants))
	for _, v := range product.Variants {
		out = append(out, model.CandidateVariant{
			StyleName:      product.StyleName,
			Brand:          product.Brand,
			ColorCode:      v.ColorCode,
			ColorName:      v.ColorName,
			EyeSize:        v.Eye,
			Bridge:         v.Bridge,
			Temple:         v.Temple,
			UPC:            v.UPC,
			Material:       v.Material,
			Gender:         v.Gender,
			InStock:        v.InStock,
			WholesalePrice: v.Price,
		})
	}
	return out
}
