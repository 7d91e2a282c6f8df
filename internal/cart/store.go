package cart

import (
	"context"
	"maps"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Store keeps carts in process memory. Carts of different customers never
// contend; mutations of the same cart are serialized by a per-customer lock.
type Store struct {
	entries sync.Map // customerID -> *entry
}

type entry struct {
	mu    sync.Mutex
	lines map[string]int
	// detached entries were removed from the map, writers must retry with a fresh one
	detached bool
}

var _ port.CartStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Get(_ context.Context, customerID string) (domain.Cart, error) {
	v, ok := s.entries.Load(customerID)
	if !ok {
		return emptyCart(customerID), nil
	}

	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()

	return snapshot(customerID, e.lines), nil
}

func (s *Store) Update(ctx context.Context, customerID string, fn func(lines map[string]int) error) (domain.Cart, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Cart{}, err
		}

		v, _ := s.entries.LoadOrStore(customerID, &entry{lines: map[string]int{}})
		e := v.(*entry)

		e.mu.Lock()
		if e.detached {
			e.mu.Unlock()
			continue
		}

		draft := maps.Clone(e.lines)
		if err := fn(draft); err != nil {
			s.detachIfEmpty(customerID, e)
			e.mu.Unlock()
			return domain.Cart{}, err
		}

		maps.DeleteFunc(draft, func(_ string, qty int) bool { return qty <= 0 })
		e.lines = draft
		s.detachIfEmpty(customerID, e)

		cart := snapshot(customerID, e.lines)
		e.mu.Unlock()

		return cart, nil
	}
}

func (s *Store) Clear(_ context.Context, customerID string) error {
	v, ok := s.entries.LoadAndDelete(customerID)
	if !ok {
		return nil
	}

	e := v.(*entry)
	e.mu.Lock()
	e.detached = true
	e.lines = nil
	e.mu.Unlock()

	return nil
}

// detachIfEmpty must be called with e.mu held.
func (s *Store) detachIfEmpty(customerID string, e *entry) {
	if len(e.lines) > 0 {
		return
	}
	e.detached = true
	s.entries.CompareAndDelete(customerID, e)
}

func emptyCart(customerID string) domain.Cart {
	return domain.Cart{CustomerID: customerID, Lines: map[string]int{}}
}

func snapshot(customerID string, lines map[string]int) domain.Cart {
	cart := emptyCart(customerID)
	maps.Copy(cart.Lines, lines)
	return cart
}
