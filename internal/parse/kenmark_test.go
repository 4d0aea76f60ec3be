package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-payto/optical-sub002/internal/model"
)

const kenmarkEmail = `<html><body>
<p>Thank you for your Kenmark order.</p>
<p>Date: 6/3/2026  Cust #: KM2210</p>
<table>
  <tr><th>Frame Name</th><th>Color</th><th>Size</th><th>Qty</th></tr>
  <tr><td>Kenmark - Bergen</td><td>BLK</td><td>53-17-145</td><td>1</td></tr>
</table>
<p>Regards,<br>Jamie Lee<br>Kenmark Eyewear</p>
</body></html>`

func TestKenmarkParseSubjectFallback(t *testing.T) {
	t.Parallel()

	// No order number anywhere in the body: the subject-line convention is
	// the last pattern in the chain.
	p := NewKenmarkParser()
	order, err := p.Parse(model.RawDocument{
		HTML:    kenmarkEmail,
		Subject: "Kenmark Order Confirmation #K558201",
	})
	require.NoError(t, err)

	assert.Equal(t, "kenmark", order.Vendor)
	assert.Equal(t, "K558201", order.OrderNumber)
	assert.Equal(t, "6/3/2026", order.OrderDate)
	assert.Equal(t, "KM2210", order.AccountNumber)
	assert.Equal(t, "Jamie Lee", order.RepName)

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Kenmark", item.Brand)
	assert.Equal(t, "Bergen", item.Model)
	assert.Equal(t, "Black", item.ColorName)
	assert.Equal(t, "53", item.EyeSize)
	assert.Equal(t, "17", item.Bridge)
	assert.Equal(t, "145", item.Temple)
}

func TestKenmarkParseBodyLabelWins(t *testing.T) {
	t.Parallel()

	// An explicit body label takes priority over the subject line.
	body := `<html><body><p>Order Number: K100</p></body></html>`
	p := NewKenmarkParser()
	order, err := p.Parse(model.RawDocument{HTML: body, Subject: "Confirmation #K999"})
	require.NoError(t, err)
	assert.Equal(t, "K100", order.OrderNumber)
}

func TestKenmarkParseNoOrderNumber(t *testing.T) {
	t.Parallel()

	p := NewKenmarkParser()
	order, err := p.Parse(model.RawDocument{HTML: `<html><body><p>Order Date: 4/2/2026</p></body></html>`})
	require.NoError(t, err)
	assert.Empty(t, order.OrderNumber)
	assert.Contains(t, order.Warnings, "order number not found")
}

func TestKenmarkParseUnrecognizableDocument(t *testing.T) {
	t.Parallel()

	p := NewKenmarkParser()
	_, err := p.Parse(model.RawDocument{HTML: `<html><body><p>hi</p></body></html>`})
	require.Error(t, err)
}
