// Package memory provides an in-memory cart.Repository: the test substitute
// for the Redis store, and the fallback when no REDIS_URL is configured.
package memory

import (
	"context"
	"sync"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
)

// Carts is a process-local cart snapshot store keyed by session.
type Carts struct {
	mu        sync.RWMutex
	snapshots map[string]cart.Cart
}

// NewCarts creates an empty in-memory store.
func NewCarts() *Carts {
	return &Carts{snapshots: make(map[string]cart.Cart)}
}

// Session returns the repository bound to one session's record.
func (c *Carts) Session(sessionID string) *CartRepository {
	return &CartRepository{store: c, key: sessionID}
}

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository for one session.
type CartRepository struct {
	store *Carts
	key   string
}

// Load returns the stored snapshot or cart.ErrNoSnapshot.
func (r *CartRepository) Load(_ context.Context) (cart.Cart, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.snapshots[r.key]
	if !ok {
		return cart.Cart{}, cart.ErrNoSnapshot
	}
	return copyCart(c), nil
}

// Save replaces the stored snapshot.
func (r *CartRepository) Save(_ context.Context, c cart.Cart) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.snapshots[r.key] = copyCart(c)
	return nil
}

// copyCart deep-copies a snapshot so stored state never aliases a caller's
// line slice or variant maps.
func copyCart(c cart.Cart) cart.Cart {
	if len(c.Lines) == 0 {
		return cart.Cart{}
	}
	lines := make([]cart.Line, len(c.Lines))
	for i, l := range c.Lines {
		cp := l
		if l.SelectedVariant != nil {
			cp.SelectedVariant = make(map[string]string, len(l.SelectedVariant))
			for k, v := range l.SelectedVariant {
				cp.SelectedVariant[k] = v
			}
		}
		lines[i] = cp
	}
	return cart.Cart{Lines: lines}
}
