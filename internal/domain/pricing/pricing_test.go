package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

func line(id int64, price string, qty int, saver bool) cart.Line {
	return cart.Line{
		ID: cart.LineID(id, nil),
		Product: product.Product{
			ID:            id,
			Price:         decimal.RequireFromString(price),
			ShippingSaver: saver,
		},
		Quantity: qty,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		"want %s, got %s", want, got.String())
}

func TestPrice_BelowThresholds(t *testing.T) {
	c := cart.Cart{Lines: []cart.Line{line(1, "30.00", 1, false)}}

	q := DefaultRules().Price(c)

	assertDecimal(t, "30.00", q.Subtotal)
	assertDecimal(t, "0", q.Discount)
	assertDecimal(t, "6.00", q.Shipping)
	assertDecimal(t, "36.00", q.Total)
	assert.False(t, q.FreeShipping())
}

func TestPrice_AboveThresholds(t *testing.T) {
	c := cart.Cart{Lines: []cart.Line{line(1, "50.00", 1, false)}}

	q := DefaultRules().Price(c)

	assertDecimal(t, "50.00", q.Subtotal)
	assertDecimal(t, "7.50", q.Discount)
	assertDecimal(t, "0", q.Shipping)
	assertDecimal(t, "42.50", q.Total)
	assert.True(t, q.FreeShipping())
}

func TestPrice_ExactlyAtThreshold(t *testing.T) {
	// Both comparisons are inclusive: 35 earns the discount and free
	// shipping at the same time.
	c := cart.Cart{Lines: []cart.Line{line(1, "35.00", 1, false)}}

	q := DefaultRules().Price(c)

	assertDecimal(t, "5.25", q.Discount)
	assert.True(t, q.FreeShipping())
	assertDecimal(t, "29.75", q.Total)
}

func TestPrice_ShippingSaverWaivesShipping(t *testing.T) {
	c := cart.Cart{Lines: []cart.Line{line(1, "12.00", 1, true)}}

	q := DefaultRules().Price(c)

	assertDecimal(t, "12.00", q.Subtotal)
	assertDecimal(t, "0", q.Discount)
	assert.True(t, q.FreeShipping())
	assertDecimal(t, "12.00", q.Total)
}

func TestPrice_ShippingSaverAnywhereInCart(t *testing.T) {
	c := cart.Cart{Lines: []cart.Line{
		line(1, "10.00", 1, false),
		line(2, "5.00", 1, true),
	}}

	q := DefaultRules().Price(c)
	assert.True(t, q.FreeShipping())
}

func TestPrice_SubtotalMultipliesQuantity(t *testing.T) {
	c := cart.Cart{Lines: []cart.Line{
		line(1, "9.95", 3, false),
		line(2, "4.10", 2, false),
	}}

	q := DefaultRules().Price(c)

	assertDecimal(t, "38.05", q.Subtotal)
	assertDecimal(t, "5.71", q.Discount) // 38.05 * 0.15 = 5.7075, rounded
	assert.True(t, q.FreeShipping())
	assertDecimal(t, "32.34", q.Total)
}

func TestPrice_EmptyCart(t *testing.T) {
	q := DefaultRules().Price(cart.Cart{})

	assertDecimal(t, "0", q.Subtotal)
	assertDecimal(t, "0", q.Discount)
	assertDecimal(t, "6.00", q.Shipping)
}

func TestPrice_Deterministic(t *testing.T) {
	c := cart.Cart{Lines: []cart.Line{line(1, "35.00", 2, false)}}
	rules := DefaultRules()

	a := rules.Price(c)
	b := rules.Price(c)

	require.True(t, a.Total.Equal(b.Total))
	require.True(t, a.Discount.Equal(b.Discount))
}

func TestPrice_CustomRules(t *testing.T) {
	rules := Rules{
		DiscountThreshold:     decimal.NewFromInt(100),
		DiscountRate:          decimal.RequireFromString("0.10"),
		FreeShippingThreshold: decimal.NewFromInt(50),
		ShippingCost:          decimal.RequireFromString("4.00"),
	}
	c := cart.Cart{Lines: []cart.Line{line(1, "60.00", 1, false)}}

	q := rules.Price(c)

	// Free shipping reached, discount tier not.
	assertDecimal(t, "0", q.Discount)
	assert.True(t, q.FreeShipping())
	assertDecimal(t, "60.00", q.Total)
}
