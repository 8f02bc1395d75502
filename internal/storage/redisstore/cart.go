// Package redisstore persists cart snapshots in Redis: one keyed record per
// session whose value is the jx-encoded array of cart lines.
package redisstore

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/vellaperfumeria/cart-api/internal/domain/cart"
)

const (
	keyPrefix  = "cart:"
	defaultTTL = 30 * 24 * time.Hour
	ttlJitter  = time.Hour
)

// Carts hands out per-session cart repositories over one shared client.
type Carts struct {
	client  *redis.Client
	baseTTL time.Duration
}

// NewCarts creates the cart snapshot store. A non-positive ttl falls back to
// the 30-day default.
func NewCarts(client *redis.Client, ttl time.Duration) *Carts {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Carts{client: client, baseTTL: ttl}
}

// Session returns the repository bound to one session's keyed record.
func (c *Carts) Session(sessionID string) *CartRepository {
	return &CartRepository{
		client:  c.client,
		key:     keyPrefix + sessionID,
		baseTTL: c.baseTTL,
	}
}

// Ping verifies connectivity, used by the readiness check.
func (c *Carts) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository for a single session key.
type CartRepository struct {
	client  *redis.Client
	key     string
	baseTTL time.Duration
}

// Load reads and decodes the persisted snapshot. A missing key maps to
// cart.ErrNoSnapshot; a malformed payload surfaces as a decode error, which
// the store treats as an empty cart.
func (r *CartRepository) Load(ctx context.Context) (cart.Cart, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.Cart{}, cart.ErrNoSnapshot
	}
	if err != nil {
		return cart.Cart{}, errors.Wrap(err, "redis get")
	}

	c, err := decodeSnapshot(data)
	if err != nil {
		return cart.Cart{}, errors.Wrap(err, "decode cart snapshot")
	}
	return c, nil
}

// Save replaces the snapshot. TTL gets a little jitter so a burst of carts
// created together does not expire together.
func (r *CartRepository) Save(ctx context.Context, c cart.Cart) error {
	data := encodeSnapshot(c)
	ttl := r.baseTTL + time.Duration(rand.Int63n(int64(ttlJitter)))
	if err := r.client.Set(ctx, r.key, data, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}
