// Package service defines interfaces for external capabilities consumed by
// the usecase layer.
package service

import (
	"context"

	"sprout/internal/errors"
)

// Payment gateway failure classes. Card and validation failures carry a
// message safe to show the user; anything else gets the generic retry copy.
var (
	// ErrCardDeclined is returned for card-level confirmation failures.
	ErrCardDeclined = errors.New("card declined")
	// ErrInvalidPaymentDetails is returned for validation-level failures.
	ErrInvalidPaymentDetails = errors.New("invalid payment details")
)

// SetupError is a classified confirmation failure. It matches its Kind
// sentinel under errors.Is and carries the provider's message when that
// message is safe to show the user.
type SetupError struct {
	Kind    error
	Message string
}

func (e *SetupError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Kind.Error()
}

func (e *SetupError) Is(target error) bool {
	return target == e.Kind
}

// UserMessage exposes the provider's message for pass-through display.
func (e *SetupError) UserMessage() string {
	return e.Message
}

// SetupResult is the provider's confirmation of a card setup.
type SetupResult struct {
	// PaymentMethod is the provider-side payment method reference to
	// register against the customer record.
	PaymentMethod string
}

// PaymentGateway is the opaque payment provider capability: confirm that a
// card setup intent has been completed. Everything past the returned
// payment-method reference is the backend's business.
type PaymentGateway interface {
	ConfirmSetup(ctx context.Context, intent string) (*SetupResult, error)
}
