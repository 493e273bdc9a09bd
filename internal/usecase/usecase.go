package usecase

import (
	"context"

	"sprout/internal/domain/entity"
)

// MealSelectionUsecase drives the per-child meal picking step: an edit
// session over the child's cart, committed together with the bundle choice.
type MealSelectionUsecase interface {
	// BeginSession opens an edit session for one child's cart.
	BeginSession(childID string) (*CartSession, error)

	// CatalogForChild fetches the per-child recommendation split.
	CatalogForChild(ctx context.Context, childID string) (*entity.RecommendedProducts, error)

	// Submit commits the session: the bundle is upserted first, then the
	// cart is saved. A session that is not exactly at capacity is refused
	// without any network call.
	Submit(ctx context.Context, session *CartSession, bundle entity.SubscriptionCreation) error
}

// AddOnUsecase drives the optional add-ons step: one selection board across
// all children, reconciled against every child cart on submit.
type AddOnUsecase interface {
	// LoadAddOns fetches the active add-on catalog.
	LoadAddOns(ctx context.Context) ([]entity.Product, error)

	// ExistingSelections derives each child's currently carted add-on
	// variant ids, limited to variants of the given add-on families.
	ExistingSelections(addons []entity.Product) map[string]map[string]bool

	// Apply reconciles every child cart against the selections and saves
	// them all concurrently. Selections map child id to a set of add-on
	// variant ids.
	Apply(ctx context.Context, addons []entity.Product, selections map[string]map[string]bool) error
}

// CheckoutPayload is everything the purchase pipeline needs beyond store
// state.
type CheckoutPayload struct {
	CustomerID      string
	PaymentCustomer string
	Intent          string
	Summary         entity.OrderSummary
	CouponCode      string
}

// PurchaseResult is the outcome of a completed purchase.
type PurchaseResult struct {
	Orders []entity.Order
}

// CheckoutUsecase runs the purchase pipeline: confirm the card setup with
// the provider, register the payment method, create one order per cart, and
// persist the tracking bundle for the post-purchase page.
type CheckoutUsecase interface {
	CreatePaymentIntent(ctx context.Context, payload entity.PaymentIntentCreation) (*entity.PaymentIntent, error)
	LatestPaymentMethod(ctx context.Context, customerID string) (*entity.PaymentMethod, error)
	ApplyDiscountCode(ctx context.Context, customerID, discountCode string) error
	StartSubscription(ctx context.Context, payload CheckoutPayload) (*PurchaseResult, error)
}

// OrderUsecase serves order review surfaces.
type OrderUsecase interface {
	// LatestOrders fetches each child's most recent order concurrently.
	LatestOrders(ctx context.Context, customerID string, childIDs []string) ([]entity.Order, error)

	// Summary fetches server-priced totals.
	Summary(ctx context.Context, customerID, discountCode string) (*entity.OrderSummary, error)

	// SummaryLines builds the locally priced checkout summary from store
	// state: one meal-plan line per child priced over recipe items only,
	// plus one line per carted add-on.
	SummaryLines() []entity.SummaryLine

	ShippingRates(ctx context.Context) ([]entity.ShippingRate, error)
}

// DiscountUsecase serves the promotional banner and referral program.
type DiscountUsecase interface {
	// Banner resolves the discount to advertise: a referral-link discount
	// when the visit came from one, the primary banner discount otherwise.
	Banner(ctx context.Context, visitURL string) (*entity.Discount, error)

	PrimaryDiscount(ctx context.Context) (*entity.Discount, error)
	ReferralDiscount(ctx context.Context) (*entity.Discount, error)

	// ReferralLink builds the shareable link for a referral-program
	// discount, empty for any other discount.
	ReferralLink(discount *entity.Discount) string

	// DiscountFromReferralURL resolves the discount a referral link points
	// at, nil when the URL is not a referral link. Lookup failures are
	// swallowed.
	DiscountFromReferralURL(ctx context.Context, visitURL string) *entity.Discount
}

// ReferralTrackingUsecase consumes the post-purchase tracking bundle.
type ReferralTrackingUsecase interface {
	// PixelParams takes the stored purchase bundle and serializes it into
	// the affiliate pixel query string. The bundle is consumed; a second
	// call returns empty.
	PixelParams() string
}
