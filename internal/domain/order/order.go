// Package order records completed hand-offs. The cart engine never awaits a
// response from the external checkout or messaging service, so the archive
// row is the only durable trace of what was handed over.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vellaperfumeria/cart-api/internal/currency"
)

// Channel identifies which external system the order was handed to.
type Channel string

const (
	ChannelMessage  Channel = "whatsapp"
	ChannelCheckout Channel = "checkout"
)

// Item is one archived cart line.
type Item struct {
	LineID    string            `json:"line_id"`
	ProductID int64             `json:"product_id"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
	Variant   map[string]string `json:"variant,omitempty"`
}

// Order is the archived record of a completed hand-off: the cart lines and
// the quote amounts that were rendered into the hand-off URL.
type Order struct {
	ID         string
	SessionID  string
	Channel    Channel
	Items      []Item
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Shipping   decimal.Decimal
	Total      decimal.Decimal
	Currency   currency.Currency
	HandoffURL string
	CreatedAt  time.Time
}

// Repository persists archived orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
}
