package usecase

import (
	"sprout/internal/domain/entity"
	"sprout/internal/errors"
)

// Cart edit failures that never reach the network.
var (
	// ErrCartFull refuses an increment at serving capacity.
	ErrCartFull = errors.New("Your cart is full, try removing an item(s) before adding this one")
	// ErrCartNotFull refuses a submit below serving capacity.
	ErrCartNotFull = errors.New("cart has fewer meals than the bundle allows")
)

// CartSession is an in-memory edit session over one child's cart. It works
// on a deep copy, so nothing is visible in the cart store until the session
// is submitted. The recipe count is tracked incrementally; add-ons never
// count against capacity.
type CartSession struct {
	childID   string
	capacity  int
	cart      entity.Cart
	itemCount int
}

// NewCartSession opens an edit session over a copy of the given cart.
// Capacity is the bundle's serving count.
func NewCartSession(capacity int, cart entity.Cart) *CartSession {
	return &CartSession{
		childID:   cart.Child,
		capacity:  capacity,
		cart:      cart.Clone(),
		itemCount: cart.RecipeCount(),
	}
}

// ChildID is the child this session edits for.
func (s *CartSession) ChildID() string {
	return s.childID
}

// ItemCount is the current recipe quantity total.
func (s *CartSession) ItemCount() int {
	return s.itemCount
}

// Capacity is the bundle serving limit.
func (s *CartSession) Capacity() int {
	return s.capacity
}

// Cart returns a deep copy of the session's working cart.
func (s *CartSession) Cart() entity.Cart {
	return s.cart.Clone()
}

// Increment adds one of the product to the cart, appending a new line item
// when the product is not yet present. Incrementing a recipe at capacity
// returns ErrCartFull and leaves the cart unchanged.
func (s *CartSession) Increment(product entity.Product, variant *entity.ProductVariant) error {
	if product.IsRecipe() && s.itemCount >= s.capacity {
		return errors.WithStack(ErrCartFull)
	}

	if item := s.findLineItem(product.ID); item != nil {
		item.Quantity++
	} else {
		clone := product.Clone()
		lineItem := entity.LineItem{Product: &clone, Quantity: 1}
		if variant != nil {
			v := *variant
			lineItem.ProductVariant = &v
		}
		s.cart.LineItems = append(s.cart.LineItems, lineItem)
	}

	if product.IsRecipe() {
		s.itemCount++
	}

	return nil
}

// Decrement removes one of the product. Quantity stops at zero and the line
// item is never removed: the zero-quantity entry is what tells the server to
// drop it on save. An absent or already-zero product is a no-op.
func (s *CartSession) Decrement(productID string) {
	item := s.findLineItem(productID)
	if item == nil || item.Quantity == 0 {
		return
	}

	item.Quantity--
	if item.Product != nil && item.Product.IsRecipe() {
		s.itemCount--
	}
}

// ReadyToSubmit gates a submit: over capacity yields a CapacityError whose
// text tells the user what to remove, under capacity yields ErrCartNotFull.
func (s *CartSession) ReadyToSubmit() error {
	if s.itemCount > s.capacity {
		return &CapacityError{Count: s.itemCount, Capacity: s.capacity}
	}
	if s.itemCount < s.capacity {
		return errors.WithStack(ErrCartNotFull)
	}

	return nil
}

func (s *CartSession) findLineItem(productID string) *entity.LineItem {
	for i := range s.cart.LineItems {
		if s.cart.LineItems[i].Product != nil && s.cart.LineItems[i].Product.ID == productID {
			return &s.cart.LineItems[i]
		}
	}

	return nil
}
