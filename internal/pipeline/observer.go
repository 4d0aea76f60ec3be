package pipeline

import (
	"go.uber.org/zap"

	"github.com/Cloud-payto/optical-sub002/internal/model"
)

// Observer receives progress callbacks from the orchestrator. ItemDone is
// invoked from concurrent workers, so implementations must be safe for
// concurrent use.
type Observer interface {
	BatchStart(batch, totalBatches int)
	ItemDone(index int, item model.EnrichedItem)
	RunDone(stats model.RunStats)
}

// NopObserver discards all callbacks.
type NopObserver struct{}

func (NopObserver) BatchStart(int, int)              {}
func (NopObserver) ItemDone(int, model.EnrichedItem) {}
func (NopObserver) RunDone(model.RunStats)           {}

// LogObserver reports progress through the global logger.
type LogObserver struct{}

func (LogObserver) BatchStart(batch, totalBatches int) {
	zap.L().Info("starting enrichment batch",
		zap.Int("batch", batch),
		zap.Int("total_batches", totalBatches))
}

func (LogObserver) ItemDone(index int, item model.EnrichedItem) {
	if item.ErrorReason != "" {
		zap.L().Warn("item enrichment failed",
			zap.Int("index", index),
			zap.String("model", item.Model),
			zap.String("reason", item.ErrorReason))
		return
	}
	zap.L().Info("item enriched",
		zap.Int("index", index),
		zap.String("model", item.Model),
		zap.String("upc", item.UPC),
		zap.Int("confidence", item.ConfidenceScore),
		zap.Bool("validated", item.Validated),
		zap.String("strategy", string(item.Strategy)),
		zap.Bool("from_cache", item.FromCache))
}

func (LogObserver) RunDone(stats model.RunStats) {
	zap.L().Info("enrichment run complete",
		zap.String("run_id", stats.RunID),
		zap.String("vendor", stats.Vendor),
		zap.Int("total", stats.TotalItems),
		zap.Int("enriched", stats.Enriched),
		zap.Int("failed", stats.Failed),
		zap.Int("search_hits", stats.SearchHits),
		zap.Int("page_hits", stats.PageHits),
		zap.Int("cache_hits", stats.CacheHits),
		zap.Int("low_confidence", stats.LowConfidence),
		zap.Duration("elapsed", stats.Elapsed))
}
