package store

import (
	"context"
	"io"
	"log/slog"

	"sprout/internal/domain/entity"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serverError mimics a transport error carrying a message safe to show the
// user.
type serverError struct {
	message string
}

func (e *serverError) Error() string {
	return e.message
}

func (e *serverError) UserMessage() string {
	return e.message
}

type fakeCustomerRepo struct {
	create      func(ctx context.Context, payload entity.CustomerCreation) (*entity.Customer, error)
	currentUser func(ctx context.Context) (*entity.Customer, error)
	update      func(ctx context.Context, payload entity.CustomerUpdate) (*entity.Customer, error)
	setPassword func(ctx context.Context, customerID, password string) error
}

func (f *fakeCustomerRepo) Create(ctx context.Context, payload entity.CustomerCreation) (*entity.Customer, error) {
	return f.create(ctx, payload)
}

func (f *fakeCustomerRepo) CurrentUser(ctx context.Context) (*entity.Customer, error) {
	return f.currentUser(ctx)
}

func (f *fakeCustomerRepo) Update(ctx context.Context, payload entity.CustomerUpdate) (*entity.Customer, error) {
	return f.update(ctx, payload)
}

func (f *fakeCustomerRepo) SetPassword(ctx context.Context, customerID, password string) error {
	return f.setPassword(ctx, customerID, password)
}

type fakeChildRepo struct {
	create func(ctx context.Context, child entity.Child, parentID string) (*entity.Child, error)
	update func(ctx context.Context, payload entity.ChildUpdate) (*entity.Child, error)
	delete func(ctx context.Context, childID string) error
}

func (f *fakeChildRepo) Create(ctx context.Context, child entity.Child, parentID string) (*entity.Child, error) {
	return f.create(ctx, child, parentID)
}

func (f *fakeChildRepo) Update(ctx context.Context, payload entity.ChildUpdate) (*entity.Child, error) {
	return f.update(ctx, payload)
}

func (f *fakeChildRepo) Delete(ctx context.Context, childID string) error {
	return f.delete(ctx, childID)
}

type fakeAddressRepo struct {
	create func(ctx context.Context, address entity.Address) (*entity.Address, error)
	update func(ctx context.Context, address entity.Address) (*entity.Address, error)
}

func (f *fakeAddressRepo) Create(ctx context.Context, address entity.Address) (*entity.Address, error) {
	return f.create(ctx, address)
}

func (f *fakeAddressRepo) Update(ctx context.Context, address entity.Address) (*entity.Address, error) {
	return f.update(ctx, address)
}

type fakeSubscriptionRepo struct {
	create           func(ctx context.Context, payload entity.SubscriptionCreation) (*entity.Subscription, error)
	updateChargeDate func(ctx context.Context, subscriptionID, nextOrderChargeDate string) (*entity.Subscription, error)
	cancel           func(ctx context.Context, subscriptionID string) (*entity.Subscription, error)
	precancel        func(ctx context.Context, subscriptionID string) (*entity.PrecancelURL, error)
	reactivate       func(ctx context.Context, subscriptionID string) (*entity.Subscription, error)
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, payload entity.SubscriptionCreation) (*entity.Subscription, error) {
	return f.create(ctx, payload)
}

func (f *fakeSubscriptionRepo) UpdateChargeDate(ctx context.Context, subscriptionID, nextOrderChargeDate string) (*entity.Subscription, error) {
	return f.updateChargeDate(ctx, subscriptionID, nextOrderChargeDate)
}

func (f *fakeSubscriptionRepo) Cancel(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	return f.cancel(ctx, subscriptionID)
}

func (f *fakeSubscriptionRepo) Precancel(ctx context.Context, subscriptionID string) (*entity.PrecancelURL, error) {
	return f.precancel(ctx, subscriptionID)
}

func (f *fakeSubscriptionRepo) Reactivate(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	return f.reactivate(ctx, subscriptionID)
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

type fakeIngredientRepo struct {
	search func(ctx context.Context, name string) ([]entity.Ingredient, error)
}

func (f *fakeIngredientRepo) Search(ctx context.Context, name string) ([]entity.Ingredient, error) {
	return f.search(ctx, name)
}

func newTestSubscriptionStore(customers *fakeCustomerRepo, children *fakeChildRepo, addresses *fakeAddressRepo, subscriptions *fakeSubscriptionRepo) *SubscriptionStore {
	return NewSubscriptionStore(SubscriptionStoreParams{
		Customers:     customers,
		Children:      children,
		Addresses:     addresses,
		Subscriptions: subscriptions,
		Logger:        newDiscardLogger(),
	})
}

func newTestCartStore(carts *fakeCartRepo) *CartStore {
	return NewCartStore(CartStoreParams{
		Carts:  carts,
		Logger: newDiscardLogger(),
	})
}
