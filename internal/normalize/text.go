package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CollapseSpace trims s and folds runs of whitespace into single spaces.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// SplitBrandModel splits a combined description on the first
// space-hyphen-space delimiter, the convention vendors use between brand
// and style ("CARRERA - 8911 V2"). When no delimiter is present the whole
// string is treated as the model.
func SplitBrandModel(s string) (brand, model string) {
	s = CollapseSpace(s)
	if i := strings.Index(s, " - "); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+3:])
	}
	return "", s
}

var leadingCodeRe = regexp.MustCompile(`^(\d{1,4}[A-Z]{0,2})\s+(.+)$`)

// SplitColor separates a leading numeric color code from the color name
// ("210 MATTE BLACK" -> "210", "MATTE BLACK"). Without a leading code the
// whole string is the name.
func SplitColor(s string) (code, name string) {
	s = CollapseSpace(s)
	if m := leadingCodeRe.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	return "", s
}

// Quantity parses a quantity cell. Unparsable or non-positive text defaults
// to 1: vendors confirm at least one piece per printed row.
func Quantity(s string) int {
	s = strings.TrimSpace(s)
	// Tolerate decoration like "2 pcs" or "QTY: 2".
	if m := regexp.MustCompile(`\d+`).FindString(s); m != "" {
		s = m
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}
