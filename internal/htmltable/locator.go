// Package htmltable locates and walks data tables inside vendor email
// markup. Vendor emails are frequently quoted and forwarded, wrapping the
// authentic inner table in outer layout tables that may contain the same
// label text in unrelated cells, so the locator always prefers depth.
package htmltable

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/Cloud-payto/optical-sub002/internal/normalize"
)

// Known header cell treatments. Vendors mark header rows either with real
// th elements or with one of two inline accents.
const (
	primaryHeaderColor   = "#1f4e79" // dark accent
	secondaryHeaderColor = "#f2f2f2" // neutral accent
)

// Parse parses an HTML document string into its root node.
func Parse(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// Text returns the flattened, whitespace-collapsed text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return normalize.CollapseSpace(sb.String())
}

// Attr returns the value of the named attribute on n, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// IsHeaderCell reports whether a cell is marked as a header: an explicit
// th element, or a td styled with one of the known header accents.
func IsHeaderCell(n *html.Node) bool {
	if isElement(n, "th") {
		return true
	}
	if !isElement(n, "td") {
		return false
	}
	style := strings.ToLower(Attr(n, "style") + " " + Attr(n, "bgcolor"))
	return strings.Contains(style, primaryHeaderColor) || strings.Contains(style, secondaryHeaderColor)
}

// IsHeaderRow reports whether any cell in the row is a header cell.
func IsHeaderRow(row *html.Node) bool {
	for _, c := range Cells(row) {
		if IsHeaderCell(c) {
			return true
		}
	}
	return false
}

// HasColspan reports whether the row contains a cell spanning columns.
// Subtotal and separator rows in vendor tables are printed this way.
func HasColspan(row *html.Node) bool {
	for _, c := range Cells(row) {
		if v := Attr(c, "colspan"); v != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 1 {
				return true
			}
		}
	}
	return false
}

// Rows returns the tr nodes belonging to table itself, descending through
// thead/tbody but never into nested tables.
func Rows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isElement(c, "table") {
				continue
			}
			if isElement(c, "tr") {
				rows = append(rows, c)
				continue
			}
			walk(c)
		}
	}
	walk(table)
	return rows
}

// Cells returns the td/th cells belonging to row (not to nested tables).
func Cells(row *html.Node) []*html.Node {
	var cells []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, "td") || isElement(c, "th") {
			cells = append(cells, c)
		}
	}
	return cells
}

// FindAll returns all descendant elements with the given tag, in document order.
func FindAll(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isElement(n, tag) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// depth counts ancestor table nodes.
func depth(n *html.Node) int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, "table") {
			d++
		}
	}
	return d
}

// qualifies reports whether one of the table's own rows contains a header
// cell whose text matches the label.
func qualifies(table *html.Node, label string) bool {
	want := strings.ToLower(normalize.CollapseSpace(label))
	for _, row := range Rows(table) {
		for _, cell := range Cells(row) {
			if !IsHeaderCell(cell) {
				continue
			}
			if strings.Contains(strings.ToLower(Text(cell)), want) {
				return true
			}
		}
	}
	return false
}

// Find returns the most specific (deepest-nested) table whose own rows carry
// a header cell matching label, or nil when no table qualifies. A nil result
// is a recoverable parse gap: the rest of the document may still be usable.
func Find(root *html.Node, label string) *html.Node {
	var best *html.Node
	bestDepth := -1
	for _, table := range FindAll(root, "table") {
		if !qualifies(table, label) {
			continue
		}
		if d := depth(table); d > bestDepth {
			best = table
			bestDepth = d
		}
	}
	return best
}

// DataRows returns the table's rows minus header and separator rows: the
// rows a parser should attempt to read line items from.
func DataRows(table *html.Node) []*html.Node {
	var out []*html.Node
	for _, row := range Rows(table) {
		if IsHeaderRow(row) || HasColspan(row) {
			continue
		}
		if len(Cells(row)) == 0 {
			continue
		}
		out = append(out, row)
	}
	return out
}
