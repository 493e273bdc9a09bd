package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/service"
	"sprout/internal/store"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCustomerRepo struct {
	currentUser func(ctx context.Context) (*entity.Customer, error)
	update      func(ctx context.Context, payload entity.CustomerUpdate) (*entity.Customer, error)
}

func (f *fakeCustomerRepo) Create(ctx context.Context, payload entity.CustomerCreation) (*entity.Customer, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeCustomerRepo) CurrentUser(ctx context.Context) (*entity.Customer, error) {
	return f.currentUser(ctx)
}

func (f *fakeCustomerRepo) Update(ctx context.Context, payload entity.CustomerUpdate) (*entity.Customer, error) {
	return f.update(ctx, payload)
}

func (f *fakeCustomerRepo) SetPassword(ctx context.Context, customerID, password string) error {
	return errors.New("unexpected call")
}

type fakeChildRepo struct{}

func (fakeChildRepo) Create(ctx context.Context, child entity.Child, parentID string) (*entity.Child, error) {
	return nil, errors.New("unexpected call")
}

func (fakeChildRepo) Update(ctx context.Context, payload entity.ChildUpdate) (*entity.Child, error) {
	return nil, errors.New("unexpected call")
}

func (fakeChildRepo) Delete(ctx context.Context, childID string) error {
	return errors.New("unexpected call")
}

type fakeAddressRepo struct{}

func (fakeAddressRepo) Create(ctx context.Context, address entity.Address) (*entity.Address, error) {
	return nil, errors.New("unexpected call")
}

func (fakeAddressRepo) Update(ctx context.Context, address entity.Address) (*entity.Address, error) {
	return nil, errors.New("unexpected call")
}

type fakeSubscriptionRepo struct {
	create func(ctx context.Context, payload entity.SubscriptionCreation) (*entity.Subscription, error)
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, payload entity.SubscriptionCreation) (*entity.Subscription, error) {
	return f.create(ctx, payload)
}

func (f *fakeSubscriptionRepo) UpdateChargeDate(ctx context.Context, subscriptionID, nextOrderChargeDate string) (*entity.Subscription, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeSubscriptionRepo) Cancel(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeSubscriptionRepo) Precancel(ctx context.Context, subscriptionID string) (*entity.PrecancelURL, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeSubscriptionRepo) Reactivate(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	return nil, errors.New("unexpected call")
}

type fakeCartRepo struct {
	listByCustomer  func(ctx context.Context, customerID string) ([]entity.Cart, error)
	updateLineItems func(ctx context.Context, payload entity.CartUpdate) (*entity.Cart, error)
}

func (f *fakeCartRepo) ListByCustomer(ctx context.Context, customerID string) ([]entity.Cart, error) {
	return f.listByCustomer(ctx, customerID)
}

func (f *fakeCartRepo) UpdateLineItems(ctx context.Context, payload entity.CartUpdate) (*entity.Cart, error) {
	return f.updateLineItems(ctx, payload)
}

type fakeProductRepo struct {
	list                func(ctx context.Context, queryArgs map[string]string) ([]entity.Product, error)
	recommendedForChild func(ctx context.Context, childID string) (*entity.RecommendedProducts, error)
}

func (f *fakeProductRepo) List(ctx context.Context, queryArgs map[string]string) ([]entity.Product, error) {
	return f.list(ctx, queryArgs)
}

func (f *fakeProductRepo) RecommendedForChild(ctx context.Context, childID string) (*entity.RecommendedProducts, error) {
	return f.recommendedForChild(ctx, childID)
}

type fakeOrderRepo struct {
	create        func(ctx context.Context, payload entity.OrderCreation) ([]entity.Order, error)
	latest        func(ctx context.Context, customerID, childID string) (*entity.Order, error)
	summary       func(ctx context.Context, customerID, discountCode string) (*entity.OrderSummary, error)
	shippingRates func(ctx context.Context) ([]entity.ShippingRate, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, payload entity.OrderCreation) ([]entity.Order, error) {
	return f.create(ctx, payload)
}

func (f *fakeOrderRepo) Latest(ctx context.Context, customerID, childID string) (*entity.Order, error) {
	return f.latest(ctx, customerID, childID)
}

func (f *fakeOrderRepo) Summary(ctx context.Context, customerID, discountCode string) (*entity.OrderSummary, error) {
	return f.summary(ctx, customerID, discountCode)
}

func (f *fakeOrderRepo) ShippingRates(ctx context.Context) ([]entity.ShippingRate, error) {
	return f.shippingRates(ctx)
}

func (f *fakeOrderRepo) Discounts(ctx context.Context) ([]entity.Discount, error) {
	return nil, errors.New("unexpected call")
}

type fakeBillingRepo struct {
	createPaymentIntent func(ctx context.Context, payload entity.PaymentIntentCreation) (*entity.PaymentIntent, error)
	createPaymentMethod func(ctx context.Context, payload entity.PaymentMethodCreation) (*entity.PaymentMethod, error)
	latestPaymentMethod func(ctx context.Context, customerID string) (*entity.PaymentMethod, error)
	applyDiscountCode   func(ctx context.Context, payload entity.CustomerDiscount) error
}

func (f *fakeBillingRepo) CreatePaymentIntent(ctx context.Context, payload entity.PaymentIntentCreation) (*entity.PaymentIntent, error) {
	return f.createPaymentIntent(ctx, payload)
}

func (f *fakeBillingRepo) CreateCharge(ctx context.Context, payload entity.ChargeCreation) (*entity.Charge, error) {
	return nil, errors.New("unexpected call")
}

func (f *fakeBillingRepo) CreatePaymentMethod(ctx context.Context, payload entity.PaymentMethodCreation) (*entity.PaymentMethod, error) {
	return f.createPaymentMethod(ctx, payload)
}

func (f *fakeBillingRepo) LatestPaymentMethod(ctx context.Context, customerID string) (*entity.PaymentMethod, error) {
	return f.latestPaymentMethod(ctx, customerID)
}

func (f *fakeBillingRepo) ApplyDiscountCode(ctx context.Context, payload entity.CustomerDiscount) error {
	return f.applyDiscountCode(ctx, payload)
}

type fakeDiscountRepo struct {
	primary    func(ctx context.Context) (*entity.Discount, error)
	byCodename func(ctx context.Context, codename string) (*entity.Discount, error)
	referral   func(ctx context.Context) (*entity.Discount, error)
}

func (f *fakeDiscountRepo) Primary(ctx context.Context) (*entity.Discount, error) {
	return f.primary(ctx)
}

func (f *fakeDiscountRepo) ByCodename(ctx context.Context, codename string) (*entity.Discount, error) {
	return f.byCodename(ctx, codename)
}

func (f *fakeDiscountRepo) Referral(ctx context.Context) (*entity.Discount, error) {
	return f.referral(ctx)
}

type fakeGateway struct {
	confirmSetup func(ctx context.Context, intent string) (*service.SetupResult, error)
}

func (f *fakeGateway) ConfirmSetup(ctx context.Context, intent string) (*service.SetupResult, error) {
	return f.confirmSetup(ctx, intent)
}

type fakeTracking struct {
	bundle *service.PurchaseBundle
	putErr error
}

func (f *fakeTracking) Put(bundle service.PurchaseBundle) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.bundle = &bundle

	return nil
}

func (f *fakeTracking) Take() (*service.PurchaseBundle, bool) {
	bundle := f.bundle
	f.bundle = nil

	return bundle, bundle != nil
}

// seedStores builds both stores preloaded with the given account data.
func seedStores(t *testing.T, customer entity.Customer, carts []entity.Cart) (*store.SubscriptionStore, *store.CartStore) {
	t.Helper()
	subs := store.NewSubscriptionStore(store.SubscriptionStoreParams{
		Customers: &fakeCustomerRepo{
			currentUser: func(ctx context.Context) (*entity.Customer, error) {
				clone := customer.Clone()

				return &clone, nil
			},
		},
		Children:      fakeChildRepo{},
		Addresses:     fakeAddressRepo{},
		Subscriptions: &fakeSubscriptionRepo{},
		Logger:        newDiscardLogger(),
	})
	require.NoError(t, subs.InitStore(context.Background()))

	cartStore := store.NewCartStore(store.CartStoreParams{
		Carts: &fakeCartRepo{
			listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
				return carts, nil
			},
		},
		Logger: newDiscardLogger(),
	})
	require.NoError(t, cartStore.InitStore(context.Background(), customer.ID))

	return subs, cartStore
}

func newCartStoreWith(t *testing.T, repo *fakeCartRepo, customerID string, carts []entity.Cart) *store.CartStore {
	t.Helper()
	list := repo.listByCustomer
	repo.listByCustomer = func(ctx context.Context, id string) ([]entity.Cart, error) {
		return carts, nil
	}
	cartStore := store.NewCartStore(store.CartStoreParams{
		Carts:  repo,
		Logger: newDiscardLogger(),
	})
	require.NoError(t, cartStore.InitStore(context.Background(), customerID))
	repo.listByCustomer = list

	return cartStore
}
