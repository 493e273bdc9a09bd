package repository

import (
	"context"

	"sprout/internal/domain/entity"
)

// CartRepository defines the cart resource operations. Carts are created
// server-side; the client only lists and patches them.
type CartRepository interface {
	// ListByCustomer fetches every child cart for a customer.
	ListByCustomer(ctx context.Context, customerID string) ([]entity.Cart, error)

	// UpdateLineItems replaces a cart's line items wholesale and returns the
	// reconciled cart. Zero-quantity items signal removal to the server.
	UpdateLineItems(ctx context.Context, payload entity.CartUpdate) (*entity.Cart, error)
}

// SubscriptionRepository defines the per-child subscription operations.
type SubscriptionRepository interface {
	// Create upserts a subscription on the customer/child composite key.
	// The returned subscription's IsNew reflects whether a new record was
	// created.
	Create(ctx context.Context, payload entity.SubscriptionCreation) (*entity.Subscription, error)

	// UpdateChargeDate moves the next order charge date.
	UpdateChargeDate(ctx context.Context, subscriptionID, nextOrderChargeDate string) (*entity.Subscription, error)

	// Cancel flips the subscription inactive. The record is never deleted.
	Cancel(ctx context.Context, subscriptionID string) (*entity.Subscription, error)

	// Precancel returns the retention-flow URL shown before cancellation.
	Precancel(ctx context.Context, subscriptionID string) (*entity.PrecancelURL, error)

	// Reactivate flips the subscription active; the server processes the
	// next order immediately.
	Reactivate(ctx context.Context, subscriptionID string) (*entity.Subscription, error)
}
