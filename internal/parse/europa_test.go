package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cloud-payto/optical-sub002/internal/model"
)

const europaEmail = `<html><body>
<p>Order #: 551209   Date: 5/20/2026</p>
<p>Account: EU-80411   Your Rep: Jordan Avery</p>
<table>
  <tr><td style="background-color:#1f4e79;color:#fff">Frame</td>
      <td style="background-color:#1f4e79;color:#fff">Color</td>
      <td style="background-color:#1f4e79;color:#fff">Size</td>
      <td style="background-color:#1f4e79;color:#fff">Qty</td></tr>
  <tr><td>Scott Harris - SH-620</td><td>01 Black</td><td>52/18/140</td><td>2</td></tr>
</table>
</body></html>`

func TestEuropaParse(t *testing.T) {
	t.Parallel()

	p := NewEuropaParser()
	order, err := p.Parse(model.RawDocument{HTML: europaEmail})
	require.NoError(t, err)

	assert.Equal(t, "europa", order.Vendor)
	assert.Equal(t, "551209", order.OrderNumber)
	assert.Equal(t, "5/20/2026", order.OrderDate)
	assert.Equal(t, "EU-80411", order.AccountNumber)
	assert.Equal(t, "Jordan Avery", order.RepName)

	// The header row uses the styled-cell treatment rather than th markers.
	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Scott Harris", item.Brand)
	assert.Equal(t, "SH-620", item.Model)
	assert.Equal(t, "01", item.ColorCode)
	assert.Equal(t, "Black", item.ColorName)
	assert.Equal(t, "52", item.EyeSize)
	assert.Equal(t, 2, item.Quantity)
}

func TestEuropaParseMissingTable(t *testing.T) {
	t.Parallel()

	p := NewEuropaParser()
	order, err := p.Parse(model.RawDocument{HTML: `<html><body><p>Order #: 12</p></body></html>`})
	require.NoError(t, err)
	assert.Equal(t, "12", order.OrderNumber)
	assert.Contains(t, order.Warnings, "line-item table not found")
}
