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
	marchonOrderNumRe = regexp.MustCompile(`(?i)order\s*(?:confirmation|number|#)\s*:?\s*([A-Z0-9-]+)`)
	marchonDateRe     = regexp.MustCompile(`(?i)order(?:ed)?\s*(?:date|on)\s*:?\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
	marchonAccountRe  = regexp.MustCompile(`(?i)(?:ship\s*to|account)\s*(?:number|#)?\s*:?\s*(\d[\d-]*)`)
	marchonRepRe      = regexp.MustCompile(`(?i)(?:sales\s*)?consultant\s*:?\s*([A-Za-z][A-Za-z .'-]+)`)
)

// MarchonParser reads Marchon HTML order confirmations. Line items live in
// an "Order Detail" table.
type MarchonParser struct{}

func NewMarchonParser() *MarchonParser { return &MarchonParser{} }

func (p *MarchonParser) Vendor() string { return "marchon" }

func (p *MarchonParser) Parse(doc model.RawDocument) (*model.ParsedOrder, error) {
	if doc.HTML == "" {
		return nil, eris.New("marchon: document has no html body")
	}
	root, err := htmltable.Parse(doc.HTML)
	if err != nil {
		return nil, eris.Wrap(err, "marchon: parse html")
	}

	// Header regexes run against the raw markup so tag boundaries delimit
	// free-text values.
	order := &model.ParsedOrder{
		Vendor:        p.Vendor(),
		OrderNumber:   firstMatch(doc.HTML, marchonOrderNumRe),
		OrderDate:     firstMatch(doc.HTML, marchonDateRe),
		RepName:       firstMatch(doc.HTML, marchonRepRe),
		AccountNumber: firstMatch(doc.HTML, marchonAccountRe),
		Address:       shipToAddress(doc.HTML),
		TotalAmount:   firstMatch(doc.HTML, orderTotalRe),
	}
	if order.OrderNumber == "" {
		order.Warn("order number not found")
	}

	table := htmltable.Find(root, "Order Detail")
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

	zap.L().Debug("parsed marchon order",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)))
	return finish(order)
}

// parseRow reads one data row: style | color | size | quantity.
func (p *MarchonParser) parseRow(row *html.Node) (model.LineItem, bool) {
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
