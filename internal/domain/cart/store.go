package cart

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/vellaperfumeria/cart-api/internal/domain/product"
)

// Op identifies the mutation that produced a change event.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
)

// Event describes a completed cart mutation. It is delivered to the change
// listener after the new snapshot has been persisted, so UI concerns (such
// as opening the cart panel on add) stay out of the state transition itself.
type Event struct {
	Op   Op
	Cart Cart
}

// Store owns one cart: it applies mutations, persists the resulting snapshot
// after every change, and notifies an optional listener. It is bound to a
// single Repository (one session's keyed record).
//
// Persistence is best-effort: a failed save is logged and swallowed, the
// in-memory snapshot stays authoritative for the session. A failed or
// malformed load hydrates to an empty cart. No cart operation ever returns
// an error to its caller.
type Store struct {
	repo     Repository
	lg       *zap.Logger
	onChange func(Event)

	cart Cart
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(lg *zap.Logger) StoreOption {
	return func(s *Store) { s.lg = lg }
}

// WithChangeListener registers a callback invoked after every successful
// mutation, with the operation kind and the new snapshot.
func WithChangeListener(fn func(Event)) StoreOption {
	return func(s *Store) { s.onChange = fn }
}

// NewStore creates an empty Store bound to the given repository. Call
// Hydrate to pick up a previously persisted snapshot.
func NewStore(repo Repository, opts ...StoreOption) *Store {
	s := &Store{
		repo: repo,
		lg:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the persisted snapshot into the store. Missing or malformed
// data leaves the store empty; nothing is reported to the caller.
func (s *Store) Hydrate(ctx context.Context) Cart {
	loaded, err := s.repo.Load(ctx)
	if err != nil {
		if !IsNoSnapshot(err) {
			s.lg.Warn("cart hydration failed, starting empty", zap.Error(err))
		}
		s.cart = Cart{}
		return s.Snapshot()
	}
	s.cart = loaded.clone()
	return s.Snapshot()
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() Cart {
	return s.cart.clone()
}

// Add puts one unit of the product (with the given variant selection) into
// the cart. When a line with the same derived id already exists its quantity
// is incremented; otherwise a new line is appended at the end.
func (s *Store) Add(ctx context.Context, p product.Product, variant map[string]string) Cart {
	id := LineID(p.ID, variant)

	next := s.cart.clone()
	if existing := next.Find(id); existing != nil {
		existing.Quantity++
	} else {
		next.Lines = append(next.Lines, Line{
			ID:              id,
			Product:         p,
			Quantity:        1,
			SelectedVariant: variant,
		}.clone())
	}

	return s.commit(ctx, OpAdd, next)
}

// SetQuantity replaces the quantity of the identified line. A quantity of
// zero or less removes the line. Unknown line ids are a no-op.
func (s *Store) SetQuantity(ctx context.Context, lineID string, quantity int) Cart {
	if quantity <= 0 {
		return s.Remove(ctx, lineID)
	}

	next := s.cart.clone()
	line := next.Find(lineID)
	if line == nil {
		return s.Snapshot()
	}
	line.Quantity = quantity

	return s.commit(ctx, OpUpdate, next)
}

// Remove deletes the identified line. Unknown line ids are a no-op.
func (s *Store) Remove(ctx context.Context, lineID string) Cart {
	if s.cart.Find(lineID) == nil {
		return s.Snapshot()
	}

	next := Cart{Lines: make([]Line, 0, len(s.cart.Lines)-1)}
	for _, l := range s.cart.Lines {
		if l.ID != lineID {
			next.Lines = append(next.Lines, l.clone())
		}
	}

	return s.commit(ctx, OpRemove, next)
}

// Clear empties the cart. Called after a completed order hand-off.
func (s *Store) Clear(ctx context.Context) Cart {
	return s.commit(ctx, OpClear, Cart{})
}

// commit installs the new snapshot, persists it synchronously, and fires the
// change event. Persistence failures are swallowed: the session keeps its
// in-memory state and may lose it on reload, which is accepted.
func (s *Store) commit(ctx context.Context, op Op, next Cart) Cart {
	s.cart = next
	if err := s.repo.Save(ctx, next); err != nil {
		s.lg.Warn("cart snapshot save failed",
			zap.String("op", string(op)),
			zap.Error(err),
		)
	}
	if s.onChange != nil {
		s.onChange(Event{Op: op, Cart: next.clone()})
	}
	return s.Snapshot()
}

// IsNoSnapshot reports whether err means "nothing persisted yet" as opposed
// to an actual load failure.
func IsNoSnapshot(err error) bool {
	return errors.Is(err, ErrNoSnapshot)
}
