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

// Kenmark scatters header fields across the body, a signature block and the
// subject line; each field is resolved by a prioritized pattern chain and
// the first hit wins.
var (
	kenmarkOrderBodyRe = regexp.MustCompile(`(?i)order\s*(?:number|#)\s*:?\s*(K?\d+)`)
	kenmarkOrderSigRe  = regexp.MustCompile(`(?i)reference\s*:?\s*(K?\d+)`)
	kenmarkOrderSubjRe = regexp.MustCompile(`(?i)confirmation\s*#?\s*(K?\d+)`)

	kenmarkDateRe    = regexp.MustCompile(`(?i)(?:order\s*)?date\s*:?\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
	kenmarkAccountRe = regexp.MustCompile(`(?i)(?:account|cust(?:omer)?)\s*(?:number|#)?\s*:?\s*([A-Z0-9-]+)`)
	kenmarkRepBodyRe = regexp.MustCompile(`(?i)(?:sales\s*)?rep(?:resentative)?\s*:?\s*([A-Za-z][A-Za-z .'-]+)`)
	kenmarkRepSigRe  = regexp.MustCompile(`(?i)regards,?\s*(?:<[^>]+>\s*)*([A-Za-z][A-Za-z .'-]+)`)
)

// KenmarkParser reads Kenmark HTML order confirmations. Line items live in
// a "Frame Name" table.
type KenmarkParser struct{}

func NewKenmarkParser() *KenmarkParser { return &KenmarkParser{} }

func (p *KenmarkParser) Vendor() string { return "kenmark" }

func (p *KenmarkParser) Parse(doc model.RawDocument) (*model.ParsedOrder, error) {
	if doc.HTML == "" {
		return nil, eris.New("kenmark: document has no html body")
	}
	root, err := htmltable.Parse(doc.HTML)
	if err != nil {
		return nil, eris.Wrap(err, "kenmark: parse html")
	}

	// Header regexes run against the raw markup so tag boundaries delimit
	// free-text values.
	order := &model.ParsedOrder{
		Vendor:        p.Vendor(),
		OrderDate:     firstMatch(doc.HTML, kenmarkDateRe),
		AccountNumber: firstMatch(doc.HTML, kenmarkAccountRe),
		RepName:       firstMatch(doc.HTML, kenmarkRepBodyRe, kenmarkRepSigRe),
		Address:       shipToAddress(doc.HTML),
		TotalAmount:   firstMatch(doc.HTML, orderTotalRe),
	}

	order.OrderNumber = firstMatch(doc.HTML, kenmarkOrderBodyRe, kenmarkOrderSigRe)
	if order.OrderNumber == "" && doc.Subject != "" {
		order.OrderNumber = firstMatch(doc.Subject, kenmarkOrderSubjRe)
	}
	if order.OrderNumber == "" {
		order.Warn("order number not found")
	}

	table := htmltable.Find(root, "Frame Name")
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

	zap.L().Debug("parsed kenmark order",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)))
	return finish(order)
}

// parseRow reads one data row: frame | color | size | quantity. Kenmark
// prints colors as plain abbreviations with no leading code ("BLK", "TOR").
func (p *KenmarkParser) parseRow(row *html.Node) (model.LineItem, bool) {
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
