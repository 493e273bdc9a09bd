package store

import (
	"context"
	"log/slog"
	"sync"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"

	"go.uber.org/fx"
)

// User-facing copy for failed cart operations. All three surface the
// server's own message when the error carries one.
const (
	errInitCarts  = "There was an error in fetching your orders, please reload the page"
	errFetchCarts = "There was an error in fetching the cart, please reload the page"
	errUpdateCart = "There was an error updating the cart, please try again"
)

const (
	opInitCarts  = "initCarts"
	opFetchCarts = "getChildrenCarts"
	opUpdateCart = "updateCartLineItems"
)

// CartState holds every child cart keyed by child id. The server owns cart
// contents, so fetches replace a child's cart wholesale.
type CartState struct {
	Init     bool
	Status   Status
	Err      string
	Customer string
	Carts    map[string]entity.Cart
}

func initialCartState() CartState {
	return CartState{
		Status: StatusIdle,
		Carts:  map[string]entity.Cart{},
	}
}

func (st CartState) clone() CartState {
	clone := st
	clone.Carts = make(map[string]entity.Cart, len(st.Carts))
	for childID, cart := range st.Carts {
		clone.Carts[childID] = cart.Clone()
	}

	return clone
}

// CartStore owns the per-child cart state.
type CartStore struct {
	mu    sync.Mutex
	state CartState
	seq   map[string]uint64

	carts  repository.CartRepository
	logger *slog.Logger
}

// CartStoreParams holds dependencies for the cart store, injected by Fx.
type CartStoreParams struct {
	fx.In

	Carts  repository.CartRepository
	Logger *slog.Logger
}

// NewCartStore creates the cart store.
func NewCartStore(params CartStoreParams) *CartStore {
	return &CartStore{
		state:  initialCartState(),
		seq:    map[string]uint64{},
		carts:  params.Carts,
		logger: params.Logger,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *CartStore) Snapshot() CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

// Reset drops all cart state back to its initial value.
func (s *CartStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = initialCartState()
}

func (s *CartStore) begin(op string, loading bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq[op]++
	if loading {
		s.state.Status = StatusLoading
	}

	return s.seq[op]
}

func (s *CartStore) stale(op string, token uint64) bool {
	if s.seq[op] != token {
		s.logger.Debug("dropped stale response", slog.String("operation", op))

		return true
	}

	return false
}

// InitStore loads every child cart for the customer. Init flips on either
// way so the caller knows the load settled.
func (s *CartStore) InitStore(ctx context.Context, customerID string) error {
	token := s.begin(opInitCarts, false)

	carts, err := s.carts.ListByCustomer(ctx, customerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opInitCarts, token) {
		return err
	}
	s.state.Init = true
	if err != nil {
		s.state.Status = StatusError
		s.state.Err = failureMessage(err, errInitCarts)

		return err
	}
	s.state.Customer = customerID
	s.mergeCarts(carts)
	s.state.Status = StatusSuccess

	return nil
}

// GetChildrenCarts refreshes every child cart from the server.
func (s *CartStore) GetChildrenCarts(ctx context.Context, customerID string) error {
	token := s.begin(opFetchCarts, true)
	s.mu.Lock()
	s.state.Err = ""
	s.mu.Unlock()

	carts, err := s.carts.ListByCustomer(ctx, customerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opFetchCarts, token) {
		return err
	}
	if err != nil {
		s.state.Status = StatusError
		s.state.Err = failureMessage(err, errFetchCarts)

		return err
	}
	s.state.Init = true
	s.state.Customer = customerID
	s.mergeCarts(carts)
	s.state.Status = StatusSuccess

	return nil
}

// UpdateCartLineItems saves one child's cart. On failure the cart in state
// is left exactly as it was.
func (s *CartStore) UpdateCartLineItems(ctx context.Context, payload entity.CartUpdate) error {
	token := s.begin(opUpdateCart, true)

	cart, err := s.carts.UpdateLineItems(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(opUpdateCart, token) {
		return err
	}
	if err != nil {
		s.state.Status = StatusError
		s.state.Err = failureMessage(err, errUpdateCart)

		return err
	}
	s.state.Carts[cart.Child] = cart.Clone()
	s.state.Status = StatusSuccess

	return nil
}

// mergeCarts replaces each fetched child's cart wholesale. Callers must hold
// the lock.
func (s *CartStore) mergeCarts(carts []entity.Cart) {
	for _, cart := range carts {
		s.state.Carts[cart.Child] = cart.Clone()
	}
}
