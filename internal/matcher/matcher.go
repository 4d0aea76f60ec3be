// Package matcher scores vendor-catalog candidates against a parsed line
// item and selects a best match with a deterministic tie and fallback policy.
package matcher

import (
	"fmt"
	"strings"

	"github.com/Cloud-payto/optical-sub002/internal/model"
)

// Weights is one vendor's scoring table: the confidence contribution of
// each independent attribute agreement. A candidate's score is the sum of
// the weights whose attribute matched, so it can never exceed the sum of
// the table.
type Weights struct {
	UPC              int
	ColorCode        int
	ColorCodePartial int
	ColorName        int
	EyeSize          int
	Bridge           int
	Temple           int
}

// Default returns the baseline scoring table.
func Default() Weights {
	return Weights{
		UPC:              50,
		ColorCode:        50,
		ColorCodePartial: 20,
		ColorName:        20,
		EyeSize:          40,
		Bridge:           20,
		Temple:           10,
	}
}

// vendorWeights tunes the table per vendor. Vendors whose documents carry
// reliable color codes weight those higher; vendors with noisy codes lean
// on sizes instead.
var vendorWeights = map[string]Weights{
	"safilo":        {UPC: 50, ColorCode: 50, ColorCodePartial: 20, ColorName: 20, EyeSize: 40, Bridge: 20, Temple: 10},
	"modernoptical": {UPC: 50, ColorCode: 40, ColorCodePartial: 20, ColorName: 25, EyeSize: 30, Bridge: 10, Temple: 10},
	"luxottica":     {UPC: 50, ColorCode: 45, ColorCodePartial: 20, ColorName: 15, EyeSize: 35, Bridge: 15, Temple: 10},
	"marchon":       {UPC: 50, ColorCode: 50, ColorCodePartial: 20, ColorName: 20, EyeSize: 35, Bridge: 15, Temple: 10},
	"europa":        {UPC: 50, ColorCode: 40, ColorCodePartial: 20, ColorName: 25, EyeSize: 30, Bridge: 15, Temple: 10},
	"kenmark":       {UPC: 50, ColorCode: 45, ColorCodePartial: 20, ColorName: 20, EyeSize: 35, Bridge: 15, Temple: 10},
}

// For returns the scoring table for a vendor, falling back to Default.
func For(vendor string) Weights {
	if w, ok := vendorWeights[strings.ToLower(vendor)]; ok {
		return w
	}
	return Default()
}

// FallbackScore is the nominal confidence attached when no candidate scores
// above zero and the first candidate is selected as a last resort: any
// catalog hit is more informative than none.
const FallbackScore = 10

// DefaultMinConfidence is the score at and above which a match is validated.
const DefaultMinConfidence = 50

func eq(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return a != "" && a == b
}

func partial(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" || a == b {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// score computes one candidate's weighted agreement with the item.
func score(item model.LineItem, cand model.CandidateVariant, w Weights) (int, []string) {
	total := 0
	var fields []string

	if eq(item.UPC, cand.UPC) {
		total += w.UPC
		fields = append(fields, "upc")
	}

	switch {
	case eq(item.ColorCode, cand.ColorCode):
		total += w.ColorCode
		fields = append(fields, "color_code")
	case partial(item.ColorCode, cand.ColorCode):
		total += w.ColorCodePartial
		fields = append(fields, "color_code_partial")
	}

	if eq(item.ColorName, cand.ColorName) {
		total += w.ColorName
		fields = append(fields, "color_name")
	}
	if eq(item.EyeSize, cand.EyeSize) {
		total += w.EyeSize
		fields = append(fields, "eye_size")
	}
	if eq(item.Bridge, cand.Bridge) {
		total += w.Bridge
		fields = append(fields, "bridge")
	}
	if eq(item.Temple, cand.Temple) {
		total += w.Temple
		fields = append(fields, "temple")
	}

	return total, fields
}

// Match scores every candidate and selects the strictly highest; ties keep
// the first-encountered candidate (stable selection). When every candidate
// scores zero the first candidate is attached with FallbackScore so callers
// still see a best-effort row. minConfidence <= 0
// uses DefaultMinConfidence.
func Match(item model.LineItem, candidates []model.CandidateVariant, w Weights, minConfidence int) model.MatchResult {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}

	if len(candidates) == 0 {
		return model.MatchResult{
			Score:     0,
			Validated: false,
			Reason:    "no candidates returned by vendor catalog",
		}
	}

	bestIdx := -1
	bestScore := -1
	var bestFields []string
	for i := range candidates {
		s, fields := score(item, candidates[i], w)
		if s > bestScore {
			bestIdx = i
			bestScore = s
			bestFields = fields
		}
	}

	if bestScore == 0 {
		return model.MatchResult{
			Variant:   &candidates[0],
			Score:     FallbackScore,
			Validated: FallbackScore >= minConfidence,
			Reason:    "no attribute agreement; defaulted to first catalog candidate",
		}
	}

	return model.MatchResult{
		Variant:       &candidates[bestIdx],
		Score:         bestScore,
		Validated:     bestScore >= minConfidence,
		Reason:        fmt.Sprintf("matched %s (score %d)", strings.Join(bestFields, ", "), bestScore),
		MatchedFields: bestFields,
	}
}
