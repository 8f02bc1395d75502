// Package catalog implements the quick-add-by-code lookup used by the
// digital catalog page: customers type a numeric product code and get the
// matching product, or a transient "not found" status.
package catalog

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"

	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

const bloomFPR = 0.001

// QuickAdd resolves catalog codes to products. A bloom filter warmed with
// every known code sits in front of the repository so the common typo case
// is rejected without a catalog round trip. Bloom false positives fall
// through to the repository, which stays authoritative; an unwarmed filter
// never rejects anything.
type QuickAdd struct {
	products product.Repository

	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewQuickAdd creates a QuickAdd over the given catalog repository.
func NewQuickAdd(products product.Repository) *QuickAdd {
	return &QuickAdd{products: products}
}

// Warm loads all catalog codes into the prefilter. Safe to call again to
// refresh after a catalog reload.
func (q *QuickAdd) Warm(ctx context.Context) error {
	all, err := q.products.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list catalog codes")
	}

	n := uint(len(all))
	if n == 0 {
		n = 1
	}
	filter := bloom.NewWithEstimates(n, bloomFPR)
	for _, p := range all {
		filter.Add(codeKey(p.ID))
	}

	q.mu.Lock()
	q.filter = filter
	q.mu.Unlock()
	return nil
}

// Lookup resolves a numeric product code. It returns product.ErrNotFound for
// unknown codes, without touching the repository when the prefilter already
// rules the code out.
func (q *QuickAdd) Lookup(ctx context.Context, code int64) (*product.Product, error) {
	q.mu.RLock()
	filter := q.filter
	q.mu.RUnlock()

	if filter != nil && !filter.Test(codeKey(code)) {
		return nil, product.ErrNotFound
	}

	p, err := q.products.GetByID(ctx, code)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "lookup product %d", code)
	}
	return p, nil
}

func codeKey(id int64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(id))
	return buf[:]
}
