// Package pipeline drives per-item enrichment across a parsed order:
// bounded concurrent batches, inter-batch pacing for vendor rate limits,
// positional result collection, and per-run statistics.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/Cloud-payto/optical-sub002/internal/enrich"
	"github.com/Cloud-payto/optical-sub002/internal/model"
)

const (
	// DefaultBatchSize bounds how many items enrich concurrently.
	DefaultBatchSize = 5
	// DefaultBatchPause separates consecutive batches.
	DefaultBatchPause = 500 * time.Millisecond
)

// Options tunes the orchestrator.
type Options struct {
	BatchSize  int
	BatchPause time.Duration
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.BatchPause <= 0 {
		o.BatchPause = DefaultBatchPause
	}
	return o
}

// Processor enriches whole orders through one vendor's enrichment client.
type Processor struct {
	enricher enrich.Enricher
	opts     Options
	obs      Observer
}

// New creates a Processor. A nil observer disables progress callbacks.
func New(enricher enrich.Enricher, opts Options, obs Observer) *Processor {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Processor{enricher: enricher, opts: opts.withDefaults(), obs: obs}
}

// Process enriches every line item of the order. One item's failure never
// aborts the run: each outcome is captured individually and the statistics
// describe the partial success rate. Results preserve the original item
// order regardless of completion order within a batch. Process fails only
// on unusable input (an order with zero line items) or a cancelled context.
func (p *Processor) Process(ctx context.Context, order *model.ParsedOrder) (*model.EnrichedOrder, error) {
	if order == nil || len(order.Items) == 0 {
		return nil, eris.New("pipeline: order has no line items")
	}

	opts := p.opts
	start := time.Now()

	outcomes := make([]model.EnrichmentOutcome, len(order.Items))
	items := make([]model.EnrichedItem, len(order.Items))

	batches := (len(order.Items) + opts.BatchSize - 1) / opts.BatchSize
	for b := 0; b*opts.BatchSize < len(order.Items); b++ {
		lo := b * opts.BatchSize
		hi := min(lo+opts.BatchSize, len(order.Items))
		p.obs.BatchStart(b+1, batches)

		var g errgroup.Group
		g.SetLimit(opts.BatchSize)
		for i := lo; i < hi; i++ {
			i := i
			g.Go(func() error {
				out := p.enricher.Enrich(ctx, order.Items[i])
				outcomes[i] = out
				items[i] = enrichedItem(order.Items[i], out)
				p.obs.ItemDone(i, items[i])
				return nil
			})
		}
		_ = g.Wait()

		if hi < len(order.Items) {
			select {
			case <-ctx.Done():
				return nil, eris.Wrap(ctx.Err(), "pipeline: run cancelled between batches")
			case <-time.After(opts.BatchPause):
			}
		}
	}

	stats := model.RunStats{RunID: uuid.NewString(), Vendor: order.Vendor}
	for _, out := range outcomes {
		stats.Record(out)
	}
	stats.Elapsed = time.Since(start)
	p.obs.RunDone(stats)

	return &model.EnrichedOrder{Order: order, Items: items, Stats: stats}, nil
}

// enrichedItem merges an outcome back onto its line item.
func enrichedItem(item model.LineItem, out model.EnrichmentOutcome) model.EnrichedItem {
	e := model.EnrichedItem{
		LineItem:         item,
		ConfidenceScore:  out.Match.Score,
		Validated:        out.Match.Validated,
		ValidationReason: out.Match.Reason,
		Strategy:         out.Strategy,
		FromCache:        out.FromCache,
		ErrorReason:      out.ErrReason,
	}
	if v := out.Match.Variant; v != nil {
		if e.UPC == "" {
			e.UPC = v.UPC
		}
		e.EnrichedData = variantData(v)
	}
	return e
}

// variantData flattens a variant into the attribute bag persisted alongside
// the item.
func variantData(v *model.CandidateVariant) map[string]string {
	data := map[string]string{
		"style_name": v.StyleName,
		"upc":        v.UPC,
	}
	put := func(k, val string) {
		if val != "" {
			data[k] = val
		}
	}
	put("brand", v.Brand)
	put("color_code", v.ColorCode)
	put("color_name", v.ColorName)
	put("eye_size", v.EyeSize)
	put("bridge", v.Bridge)
	put("temple", v.Temple)
	put("material", v.Material)
	put("gender", v.Gender)
	put("stock_status", v.StockStatus)
	if v.InStock {
		data["in_stock"] = "true"
	}
	for k, val := range v.Attributes {
		put(k, val)
	}
	return data
}
