// Package handoff renders a priced cart into the two external hand-off URLs:
// the messaging-based order confirmation and the direct checkout redirect.
// Both are pure rendering; opening the URL is the caller's fire-and-forget
// navigation.
package handoff

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vellaperfumeria/cart-api/internal/currency"
	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/pricing"
)

// DefaultMessagingBase is the messaging-service host the order summary is
// handed to.
const DefaultMessagingBase = "https://wa.me"

// MessageBuilder renders a priced cart into a percent-encoded order summary
// URL for the messaging hand-off.
type MessageBuilder struct {
	base  string
	phone string
}

// NewMessageBuilder creates a builder for the given recipient phone number
// (digits only, country code included, as the messaging service expects).
func NewMessageBuilder(phone string) MessageBuilder {
	return MessageBuilder{base: DefaultMessagingBase, phone: phone}
}

// Build renders the order summary for the cart and quote. Lines appear in
// cart insertion order; the discount line only when a discount applies; the
// shipping line reads "free" when shipping is zero. The text is
// percent-encoded into the URL query, so each newline becomes the literal
// sequence %0A.
func (b MessageBuilder) Build(c cart.Cart, q pricing.Quote, cur currency.Currency) string {
	var t strings.Builder
	t.WriteString("Hi! I'd like to confirm this order:\n\n")

	for _, line := range c.Lines {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		t.WriteString("• ")
		t.WriteString(line.Product.Name)
		t.WriteString(" (x")
		t.WriteString(strconv.Itoa(line.Quantity))
		t.WriteString(") - ")
		t.WriteString(currency.Format(lineTotal, cur))
		t.WriteString("\n")
	}

	t.WriteString("\n*Subtotal:* ")
	t.WriteString(currency.Format(q.Subtotal, cur))

	if q.Discount.IsPositive() {
		t.WriteString("\n*Discount:* -")
		t.WriteString(currency.Format(q.Discount, cur))
	}

	t.WriteString("\n*Shipping:* ")
	if q.FreeShipping() {
		t.WriteString("free")
	} else {
		t.WriteString(currency.Format(q.Shipping, cur))
	}

	t.WriteString("\n*TOTAL:* ")
	t.WriteString(currency.Format(q.Total, cur))

	t.WriteString("\n\nPlease let me know the next steps to complete the delivery.")

	return b.base + "/" + b.phone + "?text=" + encodeQueryText(t.String())
}

// encodeQueryText percent-encodes message text for use as a URL query value.
// url.QueryEscape alone would render spaces as "+", which some messaging
// clients pass through literally, so spaces are re-encoded as %20.
func encodeQueryText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
