package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-payto/optical-sub002/internal/model"
)

const marchonEmail = `<html><body>
<p>Order Confirmation: M883120</p>
<p>Ordered on: 2/11/2026  Ship To #: 90-4417</p>
<p>Sales Consultant: Riley Park</p>
<table>
  <tr><th>Order Detail</th><th>Color</th><th>Size</th><th>Qty</th></tr>
  <tr><td>CALVIN KLEIN - CK19512</td><td>001 BLK</td><td>53-17-140</td><td>1</td></tr>
  <tr><td>FLEXON - B2037</td><td>412 NAVY</td><td>55/18/145</td><td>3</td></tr>
  <tr><td></td><td></td><td></td><td></td></tr>
</table>
</body></html>`

func TestMarchonParse(t *testing.T) {
	t.Parallel()

	p := NewMarchonParser()
	order, err := p.Parse(model.RawDocument{HTML: marchonEmail})
	require.NoError(t, err)

	assert.Equal(t, "marchon", order.Vendor)
	assert.Equal(t, "M883120", order.OrderNumber)
	assert.Equal(t, "2/11/2026", order.OrderDate)
	assert.Equal(t, "90-4417", order.AccountNumber)
	assert.Equal(t, "Riley Park", order.RepName)

	// "Ship To #" is an account number, not an address block.
	assert.Nil(t, order.Address)

	// The trailing blank separator row is skipped.
	require.Len(t, order.Items, 2)
	assert.Equal(t, "CALVIN KLEIN", order.Items[0].Brand)
	assert.Equal(t, "CK19512", order.Items[0].Model)
	assert.Equal(t, "001", order.Items[0].ColorCode)
	assert.Equal(t, "Black", order.Items[0].ColorName)
	assert.Equal(t, "FLEXON", order.Items[1].Brand)
	assert.Equal(t, 3, order.Items[1].Quantity)
	assert.Equal(t, 4, order.TotalPieces)
}

func TestMarchonParseMissingTable(t *testing.T) {
	t.Parallel()

	p := NewMarchonParser()
	order, err := p.Parse(model.RawDocument{HTML: `<html><body><p>Order Confirmation: M1</p></body></html>`})
	require.NoError(t, err)
	assert.Equal(t, "M1", order.OrderNumber)
	assert.Contains(t, order.Warnings, "line-item table not found")
}

func TestMarchonParseUnrecognizableDocument(t *testing.T) {
	t.Parallel()

	// No header fields and no line items: not an order at all.
	p := NewMarchonParser()
	_, err := p.Parse(model.RawDocument{HTML: `<html><body><p>hello</p></body></html>`})
	require.Error(t, err)
}
