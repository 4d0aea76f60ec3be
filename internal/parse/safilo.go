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
	safiloOrderNumRe = regexp.MustCompile(`(?i)order\s*(?:number|no\.?|#)\s*:?\s*([A-Z0-9][A-Z0-9-]+)`)
	safiloDateRe     = regexp.MustCompile(`(?i)order\s*date\s*:?\s*(\d{1,2}/\d{1,2}/\d{2,4})`)
	safiloRepRe      = regexp.MustCompile(`(?i)(?:sales\s*rep|placed\s*by)\s*:?\s*([A-Za-z][A-Za-z .'-]+)`)
	safiloAccountRe  = regexp.MustCompile(`(?i)(?:account|customer)\s*(?:number|no\.?|#)\s*:?\s*([A-Z0-9-]+)`)
)

// SafiloParser reads Safilo HTML order confirmations. Line items live in a
// "Style Name" table; product-image URLs carry the UPC in their final path
// segment, usually behind a link-protection redirect.
type SafiloParser struct{}

func NewSafiloParser() *SafiloParser { return &SafiloParser{} }

func (p *SafiloParser) Vendor() string { return "safilo" }

func (p *SafiloParser) Parse(doc model.RawDocument) (*model.ParsedOrder, error) {
	if doc.HTML == "" {
		return nil, eris.New("safilo: document has no html body")
	}
	root, err := htmltable.Parse(doc.HTML)
	if err != nil {
		return nil, eris.Wrap(err, "safilo: parse html")
	}

	// Header regexes run against the raw markup: tag boundaries delimit
	// free-text values like names that flattened text would run together.
	order := &model.ParsedOrder{
		Vendor:        p.Vendor(),
		OrderNumber:   firstMatch(doc.HTML, safiloOrderNumRe),
		OrderDate:     firstMatch(doc.HTML, safiloDateRe),
		RepName:       firstMatch(doc.HTML, safiloRepRe),
		AccountNumber: firstMatch(doc.HTML, safiloAccountRe),
		Address:       shipToAddress(doc.HTML),
		TotalAmount:   firstMatch(doc.HTML, orderTotalRe),
	}
	if order.OrderNumber == "" {
		order.Warn("order number not found")
	}

	table := htmltable.Find(root, "Style Name")
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

	zap.L().Debug("parsed safilo order",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)))
	return finish(order)
}

// parseRow reads one data row: image | style | color | size | quantity.
// The image column is absent from some templates, so the style column is
// wherever text first appears. Rows without a style identifier are
// separators or subtotals and are skipped silently.
func (p *SafiloParser) parseRow(row *html.Node) (model.LineItem, bool) {
	cells := htmltable.Cells(row)
	base := 0
	if cellText(cells, 0) == "" && len(cells) > 1 {
		base = 1
	}

	brand, mdl := normalize.SplitBrandModel(cellText(cells, base))
	if mdl == "" {
		return model.LineItem{}, false
	}

	code, name := normalize.SplitColor(cellText(cells, base+1))
	eye, bridge, temple := normalize.SizeTriplet(cellText(cells, base+2))

	item := model.LineItem{
		Brand:     brand,
		Model:     mdl,
		ColorCode: code,
		ColorName: normalize.Color(name),
		EyeSize:   eye,
		Bridge:    bridge,
		Temple:    temple,
		Quantity:  normalize.Quantity(cellText(cells, base+3)),
	}

	if src := rowImageURL(row); src != "" {
		item.SetRawID("image_url", src)
		item.UPC = normalize.UPCFromImageURL(src)
	}
	return item, true
}
