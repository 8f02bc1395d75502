// Package cart implements the shopping cart: line identity, the ordered
// collection of cart lines, and the store that owns mutations and snapshot
// persistence.
package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNoSnapshot is returned by Repository.Load when no snapshot has been
// persisted yet. The store treats it (and any other load error) as an empty
// cart.
var ErrNoSnapshot = errors.New("cart snapshot not found")

// Cart is an immutable snapshot of the cart: an ordered sequence of lines.
// Insertion order is significant: it drives display order and the order of
// lines in hand-off messages and URLs.
type Cart struct {
	Lines []Line
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Units returns the total number of units across all lines, the number shown
// on the cart badge.
func (c Cart) Units() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Find returns the line with the given id, or nil when absent.
func (c Cart) Find(lineID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// clone deep-copies the cart so each snapshot is independent of later
// mutations.
func (c Cart) clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]Line, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = l.clone()
	}
	return Cart{Lines: lines}
}

// Repository persists cart snapshots. Implementations: redisstore (one keyed
// record per session) and memory (tests, dev runs without Redis).
type Repository interface {
	// Load returns the persisted snapshot, ErrNoSnapshot when absent, or a
	// decode error when the stored payload is malformed.
	Load(ctx context.Context) (Cart, error)
	// Save replaces the persisted snapshot with the given cart.
	Save(ctx context.Context, c Cart) error
}
