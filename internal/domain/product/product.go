package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Catalog data is
// read-only from the cart engine's point of view: products are loaded by the
// ingest tool and only ever read here.
type Product struct {
	ID       int64
	Name     string
	Brand    string
	Category string
	Price    decimal.Decimal
	// RegularPrice is the struck-through reference price shown next to
	// discounted items. Nil when the product is not on offer.
	RegularPrice *decimal.Decimal
	Stock        int
	// ShippingSaver marks products whose presence in the cart alone waives
	// the shipping fee.
	ShippingSaver bool
	Tag           string
	ImageURL      string
	Rating        *decimal.Decimal
	ReviewCount   int
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
}
