// Package usecase defines the application workflows built on top of the
// stores: per-child meal selection, add-on reconciliation, checkout, order
// review, and referral discounts.
package usecase

import "fmt"

// UserError carries copy safe to show the user. Unwrap exposes the
// underlying cause for logging.
type UserError struct {
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// UserMessage satisfies the message pass-through convention shared with the
// stores.
func (e *UserError) UserMessage() string {
	return e.Message
}

// CapacityError reports a submit attempt with more meals than the bundle
// allows.
type CapacityError struct {
	Count    int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"You have %d meals in your cart, but your bundle meal plan has a max of %d. Either change your bundle or remove %d meals to continue",
		e.Count, e.Capacity, e.Count-e.Capacity,
	)
}
