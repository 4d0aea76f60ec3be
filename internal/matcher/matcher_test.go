package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-payto/optical-sub002/internal/model"
)

func TestMatch_ColorAndEyeSize(t *testing.T) {
	t.Parallel()

	item := model.LineItem{ColorCode: "1", EyeSize: "54"}
	candidates := []model.CandidateVariant{
		{ColorCode: "2", EyeSize: "52", UPC: "00111111111111"},
		{ColorCode: "1", EyeSize: "54", UPC: "00222222222222"},
	}

	w := Weights{ColorCode: 50, EyeSize: 40}
	got := Match(item, candidates, w, 0)

	require.NotNil(t, got.Variant)
	assert.Equal(t, "00222222222222", got.Variant.UPC)
	assert.Equal(t, 90, got.Score)
	assert.True(t, got.Validated, "90 >= default threshold 50")
	assert.ElementsMatch(t, []string{"color_code", "eye_size"}, got.MatchedFields)
}

func TestMatch_Deterministic(t *testing.T) {
	t.Parallel()

	item := model.LineItem{ColorCode: "210", EyeSize: "53"}
	candidates := []model.CandidateVariant{
		{ColorCode: "210", EyeSize: "51"},
		{ColorCode: "210", EyeSize: "53"},
		{ColorCode: "210", EyeSize: "55"},
	}

	first := Match(item, candidates, Default(), 0)
	for i := 0; i < 10; i++ {
		again := Match(item, candidates, Default(), 0)
		assert.Equal(t, first, again)
	}
}

func TestMatch_TieKeepsFirstEncountered(t *testing.T) {
	t.Parallel()

	item := model.LineItem{ColorCode: "210"}
	candidates := []model.CandidateVariant{
		{ColorCode: "210", UPC: "first"},
		{ColorCode: "210", UPC: "second"},
	}

	got := Match(item, candidates, Default(), 0)
	require.NotNil(t, got.Variant)
	assert.Equal(t, "first", got.Variant.UPC)
}

func TestMatch_ZeroScoreFallsBackToFirstCandidate(t *testing.T) {
	t.Parallel()

	item := model.LineItem{ColorCode: "999", EyeSize: "99"}
	candidates := []model.CandidateVariant{
		{ColorCode: "210", EyeSize: "53", UPC: "first"},
		{ColorCode: "320", EyeSize: "55", UPC: "second"},
	}

	got := Match(item, candidates, Default(), 0)
	require.NotNil(t, got.Variant)
	assert.Equal(t, "first", got.Variant.UPC)
	assert.Equal(t, FallbackScore, got.Score)
	assert.False(t, got.Validated)
	assert.Contains(t, got.Reason, "first catalog candidate")
}

func TestMatch_FallbackValidatedWhenThresholdIsLow(t *testing.T) {
	t.Parallel()

	item := model.LineItem{ColorCode: "999"}
	candidates := []model.CandidateVariant{{ColorCode: "210"}}

	got := Match(item, candidates, Default(), 10)
	assert.Equal(t, FallbackScore, got.Score)
	assert.True(t, got.Validated)
}

func TestMatch_EmptyCandidates(t *testing.T) {
	t.Parallel()

	got := Match(model.LineItem{}, nil, Default(), 0)
	assert.Nil(t, got.Variant)
	assert.Zero(t, got.Score)
	assert.False(t, got.Validated)
}

func TestMatch_UPCDominates(t *testing.T) {
	t.Parallel()

	item := model.LineItem{UPC: "00882663450138", ColorCode: "210"}
	candidates := []model.CandidateVariant{
		{ColorCode: "210", UPC: "00000000000000"},
		{ColorCode: "999", UPC: "00882663450138"},
	}

	// A strict tie keeps the first candidate, so give the UPC row an extra
	// agreement to pull it ahead.
	candidates[1].ColorCode = "210"
	got := Match(item, candidates, Default(), 0)

	require.NotNil(t, got.Variant)
	assert.Equal(t, "00882663450138", got.Variant.UPC)
	assert.Equal(t, 100, got.Score)
}

func TestMatch_PartialColorCode(t *testing.T) {
	t.Parallel()

	item := model.LineItem{ColorCode: "03GN"}
	candidates := []model.CandidateVariant{
		{ColorCode: "GN"},
	}

	got := Match(item, candidates, Default(), 0)
	assert.Equal(t, Default().ColorCodePartial, got.Score)
	assert.Contains(t, got.MatchedFields, "color_code_partial")
}

func TestMatch_ScoreNeverExceedsTableSum(t *testing.T) {
	t.Parallel()

	w := Default()
	sum := w.UPC + w.ColorCode + w.ColorName + w.EyeSize + w.Bridge + w.Temple

	item := model.LineItem{
		UPC: "00882663450138", ColorCode: "210", ColorName: "Black",
		EyeSize: "53", Bridge: "19", Temple: "142",
	}
	candidates := []model.CandidateVariant{{
		UPC: "00882663450138", ColorCode: "210", ColorName: "Black",
		EyeSize: "53", Bridge: "19", Temple: "142",
	}}

	got := Match(item, candidates, w, 0)
	assert.Equal(t, sum, got.Score)
	assert.LessOrEqual(t, got.Score, sum)
}

func TestMatch_CaseAndWhitespaceNormalized(t *testing.T) {
	t.Parallel()

	item := model.LineItem{ColorName: " MATTE BLACK ", EyeSize: "53"}
	candidates := []model.CandidateVariant{{ColorName: "matte black", EyeSize: " 53"}}

	got := Match(item, candidates, Default(), 0)
	assert.ElementsMatch(t, []string{"color_name", "eye_size"}, got.MatchedFields)
}

func TestFor_VendorTables(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, For("safilo").ColorCode)
	assert.Equal(t, 40, For("MODERNOPTICAL").ColorCode)
	assert.Equal(t, Default(), For("unknown-vendor"))
}
