package model

import "time"

// CandidateVariant is one vendor-catalog record for a style: a concrete
// color/size combination with its authoritative identifiers and, where the
// vendor exposes them, pricing and stock state. Candidates are transient:
// produced fresh per enrichment call or served from the per-run cache.
type CandidateVariant struct {
	StyleName string `json:"style_name,omitempty"`
	Brand     string `json:"brand,omitempty"`
	ColorCode string `json:"color_code,omitempty"`
	ColorName string `json:"color_name,omitempty"`
	EyeSize   string `json:"eye_size,omitempty"`
	Bridge    string `json:"bridge,omitempty"`
	Temple    string `json:"temple,omitempty"`
	UPC       string `json:"upc,omitempty"`
	Material  string `json:"material,omitempty"`
	Gender    string `json:"gender,omitempty"`

	InStock     bool   `json:"in_stock"`
	StockStatus string `json:"stock_status,omitempty"`

	// WholesalePrice is zero when the vendor does not legally expose price.
	WholesalePrice float64 `json:"wholesale_price,omitempty"`

	// Attributes carries any remaining vendor-specific fields.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// MatchResult is the variant matcher's verdict for one line item.
type MatchResult struct {
	// Variant is the selected candidate, nil only when the candidate set
	// was empty.
	Variant *CandidateVariant `json:"variant,omitempty"`

	// Score is the weighted sum of per-attribute agreements. It is built
	// monotonically from independent weights and never exceeds the sum of
	// all weights in the vendor's scoring table.
	Score int `json:"score"`

	// Validated is true iff Score meets the configured minimum confidence.
	// A false value is not a failure: the enriched data is still attached
	// so a human or downstream system can judge trust.
	Validated bool `json:"validated"`

	// Reason is a human-readable explanation of the selection.
	Reason string `json:"reason"`

	// MatchedFields lists the attributes that agreed.
	MatchedFields []string `json:"matched_fields,omitempty"`
}

// Strategy identifies which enrichment path produced a result.
type Strategy string

const (
	// StrategySearch is the primary catalog-search path.
	StrategySearch Strategy = "search"
	// StrategyPage is the fallback derived product-page lookup.
	StrategyPage Strategy = "page"
	// StrategyNone means no strategy produced candidates.
	StrategyNone Strategy = "none"
)

// EnrichmentOutcome summarizes one item's trip through the enrichment client.
type EnrichmentOutcome struct {
	Strategy  Strategy    `json:"strategy"`
	Match     MatchResult `json:"match"`
	FromCache bool        `json:"from_cache"`

	// ErrReason is set when the item's lookups exhausted retries or every
	// strategy came back empty. An errored item never aborts its batch.
	ErrReason string `json:"err_reason,omitempty"`
}

// Failed reports whether the outcome carries a terminal error.
func (o EnrichmentOutcome) Failed() bool {
	return o.ErrReason != ""
}

// EnrichedItem is a line item plus everything enrichment learned about it.
type EnrichedItem struct {
	LineItem

	EnrichedData     map[string]string `json:"enriched_data,omitempty"`
	ConfidenceScore  int               `json:"confidence_score"`
	Validated        bool              `json:"validated"`
	ValidationReason string            `json:"validation_reason,omitempty"`
	Strategy         Strategy          `json:"strategy"`
	FromCache        bool              `json:"from_cache"`
	ErrorReason      string            `json:"error_reason,omitempty"`
}

// EnrichedOrder is the pipeline's output: the parsed order with one enriched
// record per line item, in original document order, plus run statistics.
type EnrichedOrder struct {
	Order *ParsedOrder  `json:"order"`
	Items []EnrichedItem `json:"items"`
	Stats RunStats      `json:"stats"`
}

// RunStats aggregates per-run enrichment counters. Partial success is the
// normal case; the counters describe the failure rate rather than gate it.
type RunStats struct {
	RunID      string        `json:"run_id"`
	Vendor     string        `json:"vendor"`
	TotalItems int           `json:"total_items"`
	Enriched   int           `json:"enriched"`
	Failed     int           `json:"failed"`

	SearchHits    int `json:"search_hits"`
	PageHits      int `json:"page_hits"`
	CacheHits     int `json:"cache_hits"`
	LowConfidence int `json:"low_confidence"`

	Elapsed time.Duration `json:"elapsed_ns"`
}

// Record folds one outcome into the counters.
func (s *RunStats) Record(o EnrichmentOutcome) {
	s.TotalItems++
	if o.FromCache {
		s.CacheHits++
	}
	if o.Failed() {
		s.Failed++
		return
	}
	s.Enriched++
	switch o.Strategy {
	case StrategySearch:
		s.SearchHits++
	case StrategyPage:
		s.PageHits++
	}
	if !o.Match.Validated {
		s.LowConfidence++
	}
}
