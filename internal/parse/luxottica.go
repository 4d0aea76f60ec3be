package parse

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Cloud-payto/optical-sub002/internal/model"
	"github.com/Cloud-payto/optical-sub002/internal/normalize"
)

var (
	luxOrderNumRe = regexp.MustCompile(`(?i)order\s*(?:number|no\.?)\s*:?\s*(\d+)`)
	luxDateRe     = regexp.MustCompile(`(?i)order\s*date\s*:?\s*(\d{2}/\d{2}/\d{4})`)
	luxAccountRe  = regexp.MustCompile(`(?i)customer\s*(?:code|number)\s*:?\s*(\d+)`)

	// One confirmation line per piece:
	//   0RX5154 2000 49/21/140 8053672840245 2
	// The temple segment is absent from some layouts.
	luxLineRe = regexp.MustCompile(`(?m)^\s*(0?[A-Z]{2}\d{4}[A-Z]?)\s+(\d{3,4}(?:/[0-9A-Z]+)?)\s+(\d{2})/(\d{2})(?:/(\d{3}))?\s+(\d{12,14})\s+(\d+)\s*$`)
)

// LuxotticaParser reads Luxottica order confirmations delivered as PDF
// attachments. The pipeline receives decoded page text, so extraction is
// pure pattern matching with no document structure to lean on.
type LuxotticaParser struct{}

func NewLuxotticaParser() *LuxotticaParser { return &LuxotticaParser{} }

func (p *LuxotticaParser) Vendor() string { return "luxottica" }

func (p *LuxotticaParser) Parse(doc model.RawDocument) (*model.ParsedOrder, error) {
	text := doc.PlainText
	if text == "" {
		return nil, eris.New("luxottica: document has no extracted text")
	}

	order := &model.ParsedOrder{
		Vendor:        p.Vendor(),
		OrderNumber:   firstMatch(text, luxOrderNumRe),
		OrderDate:     firstMatch(text, luxDateRe),
		AccountNumber: firstMatch(text, luxAccountRe),
		Address:       shipToAddress(text),
		TotalAmount:   firstMatch(text, orderTotalRe),
	}
	if order.OrderNumber == "" {
		order.Warn("order number not found")
	}

	for _, m := range luxLineRe.FindAllStringSubmatch(text, -1) {
		colorCode := m[2]
		// Some layouts print color as "2000/GLOSS"; the code is the numeric
		// prefix.
		if i := strings.IndexByte(colorCode, '/'); i >= 0 {
			colorCode = colorCode[:i]
		}
		item := model.LineItem{
			Model:     m[1],
			ColorCode: colorCode,
			EyeSize:   m[3],
			Bridge:    m[4],
			Temple:    m[5],
			UPC:       m[6],
			Quantity:  normalize.Quantity(m[7]),
		}
		order.Items = append(order.Items, item)
		order.TotalPieces += item.Quantity
	}
	if len(order.Items) == 0 {
		order.Warn("no line items matched the confirmation layout")
	}

	zap.L().Debug("parsed luxottica order",
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)))
	return finish(order)
}
