// Package parse turns raw vendor order-confirmation documents into
// normalized orders. Each vendor ships its own adapter because vendors
// share no common schema; the adapters share the structural table locator
// and the normalization helpers.
package parse

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"

	"github.com/Cloud-payto/optical-sub002/internal/htmltable"
	"github.com/Cloud-payto/optical-sub002/internal/model"
)

// Parser extracts a normalized order from one vendor's document format.
type Parser interface {
	// Vendor returns the adapter's vendor identifier, e.g. "safilo".
	Vendor() string
	// Parse extracts header fields and line items. Missing fields and a
	// missing line-item table are warnings on the returned order, not
	// errors; Parse fails only on unusable input or when the document
	// yields neither header fields nor line items.
	Parse(doc model.RawDocument) (*model.ParsedOrder, error)
}

// finish applies the shared end-of-parse check: a document that produced no
// line items and not a single header field is not a recognizable order.
func finish(order *model.ParsedOrder) (*model.ParsedOrder, error) {
	if len(order.Items) == 0 && order.OrderNumber == "" && order.OrderDate == "" &&
		order.RepName == "" && order.AccountNumber == "" && order.TotalAmount == "" &&
		order.Address == nil {
		return nil, eris.Errorf("%s: no order data recognized in document", order.Vendor)
	}
	return order, nil
}

// Ship-to blocks and printed totals share one format across the HTML
// vendors, so their extraction lives here rather than per adapter.
var (
	shipToBlockRe  = regexp.MustCompile(`(?is)\bship(?:ping)?\s*(?:to|address)\s*:?\s*(.{0,600})`)
	markupTagRe    = regexp.MustCompile(`<[^>]*>`)
	cityStateZipRe = regexp.MustCompile(`^(.+?),?\s+([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)
	orderTotalRe   = regexp.MustCompile(`(?i)\b(?:order\s+|grand\s+)?total\s*:?\s*(?:<[^>]*>\s*)*\$?\s*([\d,]+\.\d{2})`)
)

// markupLines splits a fragment into trimmed text lines, treating tag
// boundaries as line breaks. Works on plain text too, where the existing
// newlines carry the structure.
func markupLines(fragment string) []string {
	var lines []string
	for _, ln := range strings.Split(markupTagRe.ReplaceAllString(fragment, "\n"), "\n") {
		if ln = strings.TrimSpace(html.UnescapeString(ln)); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// shipToAddress extracts the address block following a "Ship To" label:
// recipient and street lines closed by a city, state and ZIP line. The ZIP
// line is what distinguishes a genuine block, so nil is returned without
// one. A "#" right after the label means the vendor is printing a ship-to
// account number, not an address.
func shipToAddress(text string) *model.Address {
	m := shipToBlockRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	lines := markupLines(m[1])
	if len(lines) == 0 || strings.HasPrefix(lines[0], "#") {
		return nil
	}

	addr := &model.Address{}
	for i, ln := range lines {
		if i > 4 {
			break
		}
		if cm := cityStateZipRe.FindStringSubmatch(ln); cm != nil {
			addr.City = strings.TrimSuffix(cm[1], ",")
			addr.State = cm[2]
			addr.PostalCode = cm[3]
			return addr
		}
		switch {
		case addr.Line1 == "":
			addr.Line1 = ln
		case addr.Line2 == "":
			addr.Line2 = ln
		}
	}
	return nil
}

// firstMatch tries patterns in priority order against text and returns the
// first capture group of the first pattern that matches. Empty string when
// none match.
func firstMatch(text string, patterns ...*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// cellText returns the flattened text of cells[i], or "" when the row is
// shorter than expected.
func cellText(cells []*html.Node, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return htmltable.Text(cells[i])
}

// rowImageURL returns the src of the first image in the row, unwrapped from
// any link-protection redirect.
func rowImageURL(row *html.Node) string {
	for _, img := range htmltable.FindAll(row, "img") {
		if src := htmltable.Attr(img, "src"); src != "" {
			return src
		}
	}
	return ""
}
