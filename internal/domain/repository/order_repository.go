package repository

import (
	"context"

	"sprout/internal/domain/entity"
)

// OrderRepository defines the order resource operations.
type OrderRepository interface {
	// Create creates one order per cart id in the payload and returns them.
	Create(ctx context.Context, payload entity.OrderCreation) ([]entity.Order, error)

	// Latest fetches the most recent order for one child.
	Latest(ctx context.Context, customerID, childID string) (*entity.Order, error)

	// Summary fetches server-priced totals, optionally with a discount code
	// applied.
	Summary(ctx context.Context, customerID, discountCode string) (*entity.OrderSummary, error)

	// ShippingRates lists available shipping options.
	ShippingRates(ctx context.Context) ([]entity.ShippingRate, error)

	// Discounts lists order-level discounts.
	Discounts(ctx context.Context) ([]entity.Discount, error)
}

// BillingRepository defines the backend half of payment processing. The
// provider half lives behind service.PaymentGateway.
type BillingRepository interface {
	CreatePaymentIntent(ctx context.Context, payload entity.PaymentIntentCreation) (*entity.PaymentIntent, error)
	CreateCharge(ctx context.Context, payload entity.ChargeCreation) (*entity.Charge, error)
	CreatePaymentMethod(ctx context.Context, payload entity.PaymentMethodCreation) (*entity.PaymentMethod, error)
	LatestPaymentMethod(ctx context.Context, customerID string) (*entity.PaymentMethod, error)
	ApplyDiscountCode(ctx context.Context, payload entity.CustomerDiscount) error
}
