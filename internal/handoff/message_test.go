package handoff

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellaperfumeria/cart-api/internal/currency"
	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/pricing"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

func testLine(id int64, name, price string, qty int) cart.Line {
	return cart.Line{
		ID: cart.LineID(id, nil),
		Product: product.Product{
			ID:    id,
			Name:  name,
			Price: decimal.RequireFromString(price),
		},
		Quantity: qty,
	}
}

// decodeText extracts and percent-decodes the ?text= payload of a built URL.
func decodeText(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query().Get("text")
}

func TestMessageBuilder_Build(t *testing.T) {
	b := NewMessageBuilder("34600111222")
	c := cart.Cart{Lines: []cart.Line{
		testLine(100, "Amber Nuit", "24.90", 2),
		testLine(200, "Oud Royal", "59.00", 1),
	}}
	q := pricing.DefaultRules().Price(c)

	built := b.Build(c, q, currency.EUR)

	assert.True(t, strings.HasPrefix(built, "https://wa.me/34600111222?text="))

	text := decodeText(t, built)
	assert.Contains(t, text, "Hi! I'd like to confirm this order:")
	assert.Contains(t, text, "• Amber Nuit (x2) - 49,80 €")
	assert.Contains(t, text, "• Oud Royal (x1) - 59,00 €")
	assert.Contains(t, text, "*Subtotal:* 108,80 €")
	assert.Contains(t, text, "*Discount:* -16,32 €")
	assert.Contains(t, text, "*Shipping:* free")
	assert.Contains(t, text, "*TOTAL:* 92,48 €")
}

func TestMessageBuilder_LinesInCartOrder(t *testing.T) {
	b := NewMessageBuilder("34600111222")
	c := cart.Cart{Lines: []cart.Line{
		testLine(300, "Zafir", "10.00", 1),
		testLine(100, "Amber Nuit", "10.00", 1),
	}}
	q := pricing.DefaultRules().Price(c)

	text := decodeText(t, b.Build(c, q, currency.EUR))
	assert.Less(t, strings.Index(text, "Zafir"), strings.Index(text, "Amber Nuit"))
}

func TestMessageBuilder_NoDiscountLineBelowThreshold(t *testing.T) {
	b := NewMessageBuilder("34600111222")
	c := cart.Cart{Lines: []cart.Line{testLine(100, "Amber Nuit", "20.00", 1)}}
	q := pricing.DefaultRules().Price(c)

	text := decodeText(t, b.Build(c, q, currency.EUR))

	assert.NotContains(t, text, "*Discount:*")
	assert.Contains(t, text, "*Shipping:* 6,00 €")
	assert.Contains(t, text, "*TOTAL:* 26,00 €")
}

func TestMessageBuilder_NewlinesEncodedAsPercent0A(t *testing.T) {
	b := NewMessageBuilder("34600111222")
	c := cart.Cart{Lines: []cart.Line{testLine(100, "Amber Nuit", "20.00", 1)}}
	q := pricing.DefaultRules().Price(c)

	built := b.Build(c, q, currency.EUR)

	assert.Contains(t, built, "%0A")
	assert.NotContains(t, built, "\n")
	// Spaces must be %20, not the form-encoding plus sign.
	assert.NotContains(t, built, "+")
}

func TestMessageBuilder_USDFormatting(t *testing.T) {
	b := NewMessageBuilder("14155550100")
	c := cart.Cart{Lines: []cart.Line{testLine(100, "Amber Nuit", "50.00", 1)}}
	q := pricing.DefaultRules().Price(c)

	text := decodeText(t, b.Build(c, q, currency.USD))

	assert.Contains(t, text, "• Amber Nuit (x1) - $50.00")
	assert.Contains(t, text, "*TOTAL:* $42.50")
}
