package handler

import (
	"github.com/shopspring/decimal"

	"github.com/vellaperfumeria/cart-api/internal/currency"
	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/pricing"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

// productView is the JSON shape of a catalog product. Amounts are decimal
// strings; formatted display values are rendered separately where needed.
type productView struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand,omitempty"`
	Category      string  `json:"category,omitempty"`
	Price         string  `json:"price"`
	RegularPrice  *string `json:"regularPrice,omitempty"`
	Stock         int     `json:"stock"`
	ShippingSaver bool    `json:"shippingSaver"`
	Tag           string  `json:"tag,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Rating        *string `json:"rating,omitempty"`
	ReviewCount   int     `json:"reviewCount,omitempty"`
}

func toProductView(p product.Product) productView {
	v := productView{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		Category:      p.Category,
		Price:         p.Price.String(),
		Stock:         p.Stock,
		ShippingSaver: p.ShippingSaver,
		Tag:           p.Tag,
		ImageURL:      p.ImageURL,
		ReviewCount:   p.ReviewCount,
	}
	if p.RegularPrice != nil {
		s := p.RegularPrice.String()
		v.RegularPrice = &s
	}
	if p.Rating != nil {
		s := p.Rating.String()
		v.Rating = &s
	}
	return v
}

// lineView is one cart line with its extended (price x quantity) amount.
type lineView struct {
	ID              string            `json:"id"`
	Product         productView       `json:"product"`
	Quantity        int               `json:"quantity"`
	SelectedVariant map[string]string `json:"selectedVariant,omitempty"`
	LineTotal       string            `json:"lineTotal"`
	LineTotalText   string            `json:"lineTotalText"`
}

// quoteView carries the raw quote amounts plus display strings in the
// requested currency.
type quoteView struct {
	Subtotal     string `json:"subtotal"`
	Discount     string `json:"discount"`
	Shipping     string `json:"shipping"`
	Total        string `json:"total"`
	FreeShipping bool   `json:"freeShipping"`

	SubtotalText string `json:"subtotalText"`
	DiscountText string `json:"discountText"`
	ShippingText string `json:"shippingText"`
	TotalText    string `json:"totalText"`
}

// cartView is the priced cart returned by every cart endpoint. The quote is
// computed fresh by the pricing engine on each request, never cached.
type cartView struct {
	SessionID string     `json:"sessionId"`
	Currency  string     `json:"currency"`
	Lines     []lineView `json:"lines"`
	Units     int        `json:"units"`
	Pricing   quoteView  `json:"pricing"`
	ShowCart  bool       `json:"showCart,omitempty"`
}

func toCartView(sessionID string, c cart.Cart, q pricing.Quote, cur currency.Currency) cartView {
	lines := make([]lineView, len(c.Lines))
	for i, l := range c.Lines {
		lineTotal := l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		lines[i] = lineView{
			ID:              l.ID,
			Product:         toProductView(l.Product),
			Quantity:        l.Quantity,
			SelectedVariant: l.SelectedVariant,
			LineTotal:       lineTotal.String(),
			LineTotalText:   currency.Format(lineTotal, cur),
		}
	}

	shippingText := currency.Format(q.Shipping, cur)
	if q.FreeShipping() {
		shippingText = "free"
	}

	return cartView{
		SessionID: sessionID,
		Currency:  string(cur),
		Lines:     lines,
		Units:     c.Units(),
		Pricing: quoteView{
			Subtotal:     q.Subtotal.String(),
			Discount:     q.Discount.String(),
			Shipping:     q.Shipping.String(),
			Total:        q.Total.String(),
			FreeShipping: q.FreeShipping(),
			SubtotalText: currency.Format(q.Subtotal, cur),
			DiscountText: currency.Format(q.Discount, cur),
			ShippingText: shippingText,
			TotalText:    currency.Format(q.Total, cur),
		},
	}
}
