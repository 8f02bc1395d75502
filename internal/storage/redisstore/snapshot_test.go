package redisstore

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	regular := decimal.RequireFromString("34.90")
	rating := decimal.RequireFromString("4.7")
	in := cart.Cart{Lines: []cart.Line{
		{
			ID: "100-50ml",
			Product: product.Product{
				ID:            100,
				Name:          "Amber Nuit",
				Brand:         "Vella",
				Category:      "woman",
				Price:         decimal.RequireFromString("24.90"),
				RegularPrice:  &regular,
				Stock:         12,
				ShippingSaver: true,
				Tag:           "new",
				ImageURL:      "https://cdn.example.com/amber.jpg",
				Rating:        &rating,
				ReviewCount:   41,
			},
			Quantity:        2,
			SelectedVariant: map[string]string{"size": "50ml"},
		},
		{
			ID: "200",
			Product: product.Product{
				ID:    200,
				Name:  "Oud Royal",
				Price: decimal.RequireFromString("59.00"),
			},
			Quantity: 1,
		},
	}}

	out, err := decodeSnapshot(encodeSnapshot(in))
	require.NoError(t, err)
	require.Len(t, out.Lines, 2)

	first := out.Lines[0]
	assert.Equal(t, "100-50ml", first.ID)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, map[string]string{"size": "50ml"}, first.SelectedVariant)
	assert.Equal(t, int64(100), first.Product.ID)
	assert.Equal(t, "Amber Nuit", first.Product.Name)
	assert.True(t, decimal.RequireFromString("24.90").Equal(first.Product.Price))
	require.NotNil(t, first.Product.RegularPrice)
	assert.True(t, regular.Equal(*first.Product.RegularPrice))
	assert.True(t, first.Product.ShippingSaver)
	require.NotNil(t, first.Product.Rating)
	assert.True(t, rating.Equal(*first.Product.Rating))
	assert.Equal(t, 41, first.Product.ReviewCount)

	second := out.Lines[1]
	assert.Equal(t, "200", second.ID)
	assert.Nil(t, second.SelectedVariant)
	assert.Nil(t, second.Product.RegularPrice)
	assert.Nil(t, second.Product.Rating)
}

func TestSnapshot_EmptyCart(t *testing.T) {
	out, err := decodeSnapshot(encodeSnapshot(cart.Cart{}))
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
}

func TestSnapshot_MalformedPayload(t *testing.T) {
	_, err := decodeSnapshot([]byte("{not json"))
	require.Error(t, err)
}

func TestSnapshot_RejectsInvalidLine(t *testing.T) {
	// A line with no id is a corrupt snapshot, not an empty field.
	_, err := decodeSnapshot([]byte(`[{"id":"","quantity":1,"product":{"id":1,"name":"X","brand":"","category":"","price":"1.00","stock":0,"shipping_saver":false,"tag":"","image_url":"","review_count":0}}]`))
	require.Error(t, err)
}
