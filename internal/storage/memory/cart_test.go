package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

func sampleCart() cart.Cart {
	return cart.Cart{Lines: []cart.Line{{
		ID: "100-50ml",
		Product: product.Product{
			ID:    100,
			Name:  "Amber Nuit",
			Price: decimal.RequireFromString("24.90"),
		},
		Quantity:        2,
		SelectedVariant: map[string]string{"size": "50ml"},
	}}}
}

func TestCarts_LoadMissingSession(t *testing.T) {
	carts := NewCarts()

	_, err := carts.Session("nobody").Load(context.Background())
	require.ErrorIs(t, err, cart.ErrNoSnapshot)
}

func TestCarts_SaveThenLoad(t *testing.T) {
	carts := NewCarts()
	repo := carts.Session("s1")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCart()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "100-50ml", got.Lines[0].ID)
	assert.Equal(t, 2, got.Lines[0].Quantity)
}

func TestCarts_SessionsIsolated(t *testing.T) {
	carts := NewCarts()
	ctx := context.Background()

	require.NoError(t, carts.Session("s1").Save(ctx, sampleCart()))

	_, err := carts.Session("s2").Load(ctx)
	require.ErrorIs(t, err, cart.ErrNoSnapshot)
}

func TestCarts_StoredSnapshotIsolatedFromCaller(t *testing.T) {
	carts := NewCarts()
	repo := carts.Session("s1")
	ctx := context.Background()

	c := sampleCart()
	require.NoError(t, repo.Save(ctx, c))
	c.Lines[0].Quantity = 99
	c.Lines[0].SelectedVariant["size"] = "tampered"

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Lines[0].Quantity)
	assert.Equal(t, "50ml", got.Lines[0].SelectedVariant["size"])
}
