package parse

import (
	"regexp"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/Cloud-payto/optical-sub002/internal/htmltable"
	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/internal/normalize"
)

var (
	europaOrderNumRe = regexp.MustCompile(`(?i)order\s*#?\s*:?\s*(\d+)`)
	europaDateRe     = regexp.MustCompile(`(?i)date\s*:?\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
	europaAccountRe  = regexp.MustCompile(`(?i)account\s*:?\s*([A-Z0-9-]+)`)
	europaRepRe      = regexp.MustCompile(`(?i)your\s*rep\s*:?\s*([A-Za-z][A-Za-z .'-]+)`)
)

// EuropaParser reads Europa HTML order confirmations. Line items live in a
// "Frame" table. Europa brands its collections ("Scott Harris - SH-620"),
// so the brand/model split carries real signal here.
type EuropaParser struct{}

func NewEuropaParser() *EuropaParser { return &EuropaParser{} }

func (p *EuropaParser) Vendor() string { return "europa" }

func (p *EuropaParser) Parse(doc model.RawDocument) (*model.ParsedOrder, error) {
	if doc.HTML == "" {
		return nil, eris.New("europa: document has no html body")
	}
	root, err := htmltable.Parse(doc.HTML)
	if err != nil {
		return nil, eris.Wrap(err, "europa: parse html")
	}

	// Header regexes run against the raw markup so tag boundaries delimit
	// free-text values.
	order := &model.ParsedOrder{
		Vendor:        p.Vendor(),
		OrderNumber:   firstMatch(doc.HTML, europaOrderNumRe),
		OrderDate:     firstMatch(doc.HTML, europaDateRe),
		RepName:       firstMatch(doc.HTML, europaRepRe),
		AccountNumber: firstMatch(doc.HTML, europaAccountRe),
		Address:       shipToAddress(doc.HTML),
		TotalAmount:   firstMatch(doc.HTML, orderTotalRe),
	}
	if order.OrderNumber == "" {
		order.Warn("order number not found")
	}

	table := htmltable.Find(root, "Frame")
	if table == nil {
		order.Warn("line-item table not found")
		return finish(order)
	}

	for _, row := range htmltable.DataRows(table) {
		item, ok := p.parseRow(row)
		if !ok {
			continue
		}
		order.Items = append(order.Items, item)
		order.TotalPieces += item.Quantity
	}
	if len(order.Items) == 0 {
		order.Warn("line-item table contained no data rows")
	}

	zap.L().Debug("parsed europa order",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)))
	return finish(order)
}

// parseRow reads one data row: frame | color | size | quantity.
func (p *EuropaParser) parseRow(row *html.Node) (model.LineItem, bool) {
	cells := htmltable.Cells(row)

	brand, mdl := normalize.SplitBrandModel(cellText(cells, 0))
	if mdl == "" {
		return model.LineItem{}, false
	}

	code, name := normalize.SplitColor(cellText(cells, 1))
	eye, bridge, temple := normalize.SizeTriplet(cellText(cells, 2))

	return model.LineItem{
		Brand:     brand,
		Model:     mdl,
		ColorCode: code,
		ColorName: normalize.Color(name),
		EyeSize:   eye,
		Bridge:    bridge,
		Temple:    temple,
		Quantity:  normalize.Quantity(cellText(cells, 3)),
	}, true
}
