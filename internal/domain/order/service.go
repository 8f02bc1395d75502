package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/vellaperfumeria/cart-api/internal/currency"
	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/pricing"
)

// FromHandoff builds the archive record for a completed hand-off. The quote
// must come from the same pricing engine call that produced the hand-off URL
// so the archived amounts match what was transmitted.
func FromHandoff(
	sessionID string,
	ch Channel,
	c cart.Cart,
	q pricing.Quote,
	cur currency.Currency,
	handoffURL string,
) *Order {
	items := make([]Item, len(c.Lines))
	for i, line := range c.Lines {
		items[i] = Item{
			LineID:    line.ID,
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
			Variant:   line.SelectedVariant,
		}
	}

	return &Order{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Channel:    ch,
		Items:      items,
		Subtotal:   q.Subtotal.Round(2),
		Discount:   q.Discount,
		Shipping:   q.Shipping,
		Total:      q.Total,
		Currency:   cur,
		HandoffURL: handoffURL,
		CreatedAt:  time.Now().UTC(),
	}
}
