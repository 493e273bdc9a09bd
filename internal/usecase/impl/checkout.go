package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/domain/service"
	"sprout/internal/errors"
	"sprout/internal/store"
	"sprout/internal/usecase"

	"go.uber.org/fx"
)

// User-facing copy for checkout failures.
const (
	errPaymentGeneric      = "We've had an error processing your payment, please try again later"
	errPaymentMethod       = "There was an error creating your billing profile, please try again later"
	errPaymentIntent       = "There was an error creating your billing profile, please refresh the page"
	errOrderCreate         = "There was an error creating your order. Please refresh the page"
	errLatestPaymentMethod = "There was an error loading your billing info, try again later"
)

type checkout struct {
	gateway   service.PaymentGateway
	billing   repository.BillingRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	carts     *store.CartStore
	tracking  service.TrackingStore
	logger    *slog.Logger
}

// CheckoutParams holds dependencies for the checkout usecase, injected by
// Fx.
type CheckoutParams struct {
	fx.In

	Gateway   service.PaymentGateway
	Billing   repository.BillingRepository
	Orders    repository.OrderRepository
	Customers repository.CustomerRepository
	Carts     *store.CartStore
	Tracking  service.TrackingStore
	Logger    *slog.Logger
}

// NewCheckoutUsecase creates the purchase pipeline.
func NewCheckoutUsecase(params CheckoutParams) usecase.CheckoutUsecase {
	return &checkout{
		gateway:   params.Gateway,
		billing:   params.Billing,
		orders:    params.Orders,
		customers: params.Customers,
		carts:     params.Carts,
		tracking:  params.Tracking,
		logger:    params.Logger,
	}
}

func (c *checkout) CreatePaymentIntent(ctx context.Context, payload entity.PaymentIntentCreation) (*entity.PaymentIntent, error) {
	intent, err := c.billing.CreatePaymentIntent(ctx, payload)
	if err != nil {
		return nil, &usecase.UserError{Message: errPaymentIntent, Cause: err}
	}

	return intent, nil
}

func (c *checkout) LatestPaymentMethod(ctx context.Context, customerID string) (*entity.PaymentMethod, error) {
	method, err := c.billing.LatestPaymentMethod(ctx, customerID)
	if err != nil {
		return nil, &usecase.UserError{Message: errLatestPaymentMethod, Cause: err}
	}

	return method, nil
}

func (c *checkout) ApplyDiscountCode(ctx context.Context, customerID, discountCode string) error {
	err := c.billing.ApplyDiscountCode(ctx, entity.CustomerDiscount{
		Customer: customerID,
		Discount: discountCode,
	})
	if err != nil {
		return &usecase.UserError{
			Message: fmt.Sprintf("%q is expired or invalid or is already applied", discountCode),
			Cause:   err,
		}
	}

	return nil
}

// StartSubscription runs the purchase: confirm the card setup with the
// provider, register the resulting payment method, then create one order per
// cart. The status promotion to subscriber and the tracking bundle write are
// fire-and-forget: by then the customer has been charged, so their failures
// are logged and never surfaced.
func (c *checkout) StartSubscription(ctx context.Context, payload usecase.CheckoutPayload) (*usecase.PurchaseResult, error) {
	setup, err := c.gateway.ConfirmSetup(ctx, payload.Intent)
	if err != nil {
		message := errPaymentGeneric
		if errors.Is(err, service.ErrCardDeclined) || errors.Is(err, service.ErrInvalidPaymentDetails) {
			message = userMessage(err, errPaymentGeneric)
		}

		return nil, &usecase.UserError{Message: message, Cause: err}
	}

	_, err = c.billing.CreatePaymentMethod(ctx, entity.PaymentMethodCreation{
		PaymentCustomer: payload.PaymentCustomer,
		Customer:        payload.CustomerID,
		PaymentMethod:   setup.PaymentMethod,
	})
	if err != nil {
		return nil, &usecase.UserError{Message: userMessage(err, errPaymentMethod), Cause: err}
	}

	orders, err := c.orders.Create(ctx, entity.OrderCreation{
		Customer: payload.CustomerID,
		Carts:    c.cartIDs(),
	})
	if err != nil {
		return nil, &usecase.UserError{Message: errOrderCreate, Cause: err}
	}

	// The customer cannot log in as a subscriber until this lands, but a
	// charged customer must never see an error here.
	status := entity.StatusSubscriber
	if _, err := c.customers.Update(ctx, entity.CustomerUpdate{ID: payload.CustomerID, Status: &status}); err != nil {
		c.logger.Error("failed to promote customer to subscriber",
			slog.String("customer", payload.CustomerID),
			slog.Any("error", err),
		)
	}

	bundle := service.PurchaseBundle{
		Orders:     orders,
		Summary:    payload.Summary,
		CouponCode: payload.CouponCode,
	}
	if err := c.tracking.Put(bundle); err != nil {
		c.logger.Warn("failed to persist purchase tracking bundle", slog.Any("error", err))
	}

	return &usecase.PurchaseResult{Orders: orders}, nil
}

func (c *checkout) cartIDs() []string {
	carts := c.carts.Snapshot().Carts
	ids := make([]string, 0, len(carts))
	for _, cart := range carts {
		ids = append(ids, cart.CartID)
	}
	sort.Strings(ids)

	return ids
}

// userMessage mirrors the stores' pass-through convention for errors that
// carry copy safe to show the user.
func userMessage(err error, fallback string) string {
	var messenger interface{ UserMessage() string }
	if errors.As(err, &messenger) && messenger.UserMessage() != "" {
		return messenger.UserMessage()
	}

	return fallback
}
