// Package normalize holds the field-level cleanup shared by the vendor
// document parsers: color vocabulary, size triplets, description splitting,
// quantities, and identifier extraction from image URLs.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// colorAbbrev maps the abbreviations seen across vendor documents to full
// color names. Keys are uppercase; every value must normalize to itself so
// that Color is idempotent.
var colorAbbrev = map[string]string{
	"BLK":  "Black",
	"BK":   "Black",
	"MBLK": "Matte Black",
	"BRN":  "Brown",
	"BRWN": "Brown",
	"TORT": "Tortoise",
	"TOR":  "Tortoise",
	"HVN":  "Havana",
	"HAV":  "Havana",
	"CRY":  "Crystal",
	"CRYS": "Crystal",
	"XTAL": "Crystal",
	"GUN":  "Gunmetal",
	"GMTL": "Gunmetal",
	"SLV":  "Silver",
	"SIL":  "Silver",
	"GLD":  "Gold",
	"RGLD": "Rose Gold",
	"NAV":  "Navy",
	"NVY":  "Navy",
	"BLU":  "Blue",
	"GRN":  "Green",
	"OLV":  "Olive",
	"GRY":  "Grey",
	"GRAY": "Grey",
	"WHT":  "White",
	"PNK":  "Pink",
	"PUR":  "Purple",
	"PLUM": "Plum",
	"BURG": "Burgundy",
	"BGDY": "Burgundy",
	"TPE":  "Taupe",
	"CHAM": "Champagne",
	"DEMI": "Demi",
	"MT":   "Matte",
	"SHN":  "Shiny",
	"SATN": "Satin",
	"TRNS": "Transparent",
	"FADE": "Fade",
}

var titleCaser = cases.Title(language.English)

// Color expands free-text color abbreviations token by token, so compound
// names like "CLEO BLACK CRY" resolve to "Cleo Black Crystal". Tokens are
// split on whitespace and slashes; unknown tokens are title-cased and passed
// through unchanged. Normalizing an already-canonical name is a no-op.
func Color(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// Preserve the slash structure of names like "BLK/GLD".
	parts := strings.Split(s, "/")
	for i, part := range parts {
		fields := strings.Fields(part)
		for j, tok := range fields {
			if full, ok := colorAbbrev[strings.ToUpper(tok)]; ok {
				fields[j] = full
			} else {
				fields[j] = titleCaser.String(strings.ToLower(tok))
			}
		}
		parts[i] = strings.Join(fields, " ")
	}
	return strings.Join(parts, "/")
}
