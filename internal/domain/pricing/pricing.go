// Package pricing is the single place where a cart becomes a priced order.
// Every call site that displays or transmits a price (cart panel, checkout
// page, hand-off builders) must go through Rules.Price so the displayed,
// messaged, and redirected totals can never diverge.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
)

// Rules holds the pricing constants. The discount threshold and the
// free-shipping threshold currently share the same value, but they are two
// independent knobs checked separately; do not fold them into one.
type Rules struct {
	// DiscountThreshold is the subtotal (inclusive) at which the loyalty
	// discount kicks in.
	DiscountThreshold decimal.Decimal
	// DiscountRate is the loyalty discount as a fraction of the subtotal.
	DiscountRate decimal.Decimal
	// FreeShippingThreshold is the subtotal (inclusive) at which shipping
	// becomes free.
	FreeShippingThreshold decimal.Decimal
	// ShippingCost is the flat fee charged below the free-shipping tier.
	ShippingCost decimal.Decimal
}

// DefaultRules returns the production pricing rules: 15% loyalty discount
// from 35, free shipping from 35, flat 6.00 shipping below that.
func DefaultRules() Rules {
	return Rules{
		DiscountThreshold:     decimal.NewFromInt(35),
		DiscountRate:          decimal.RequireFromString("0.15"),
		FreeShippingThreshold: decimal.NewFromInt(35),
		ShippingCost:          decimal.RequireFromString("6.00"),
	}
}

// Quote is the priced view of a cart.
type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// FreeShipping reports whether the quote carries no shipping fee.
func (q Quote) FreeShipping() bool {
	return q.Shipping.IsZero()
}

// Price computes the quote for a cart snapshot. Pure and deterministic: no
// caching, callers invoke it fresh on every read because any cart mutation
// changes its inputs.
//
// Subtotal is the exact sum of price x quantity. The discount applies at or
// above the discount threshold (inclusive). Shipping is waived when any line
// carries the shipping-saver flag or the subtotal reaches the free-shipping
// threshold (inclusive); a subtotal exactly at 35 therefore gets both the
// discount and free shipping. Discount and total are rounded to 2 places;
// the subtotal is kept exact.
func (r Rules) Price(c cart.Cart) Quote {
	subtotal := decimal.Zero
	shippingSaver := false
	for _, line := range c.Lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		subtotal = subtotal.Add(line.Product.Price.Mul(qty))
		if line.Product.ShippingSaver {
			shippingSaver = true
		}
	}

	discount := decimal.Zero
	if subtotal.GreaterThanOrEqual(r.DiscountThreshold) {
		discount = subtotal.Mul(r.DiscountRate).Round(2)
	}

	shipping := r.ShippingCost
	if shippingSaver || subtotal.GreaterThanOrEqual(r.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	total := subtotal.Sub(discount).Add(shipping).Round(2)

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    total,
	}
}
