// Package impl implements the usecase interfaces on top of the stores and
// the remote resource layer.
package impl

import (
	"context"
	"log/slog"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
	"sprout/internal/store"
	"sprout/internal/usecase"

	"go.uber.org/fx"
)

// defaultServings is used before a child has a subscription, matching the
// pre-selected bundle on the form.
const defaultServings = 24

type mealSelection struct {
	subscriptions *store.SubscriptionStore
	carts         *store.CartStore
	products      repository.ProductRepository
	logger        *slog.Logger
}

// MealSelectionParams holds dependencies for the meal selection usecase,
// injected by Fx.
type MealSelectionParams struct {
	fx.In

	Subscriptions *store.SubscriptionStore
	Carts         *store.CartStore
	Products      repository.ProductRepository
	Logger        *slog.Logger
}

// NewMealSelectionUsecase creates the meal selection workflow.
func NewMealSelectionUsecase(params MealSelectionParams) usecase.MealSelectionUsecase {
	return &mealSelection{
		subscriptions: params.Subscriptions,
		carts:         params.Carts,
		products:      params.Products,
		logger:        params.Logger,
	}
}

func (m *mealSelection) BeginSession(childID string) (*usecase.CartSession, error) {
	carts := m.carts.Snapshot()
	cart, ok := carts.Carts[childID]
	if !ok {
		return nil, errors.Errorf("no cart exists for child %s", childID)
	}

	capacity := defaultServings
	if sub, ok := m.subscriptions.Snapshot().Subscriptions[childID]; ok {
		capacity = sub.NumberOfServings
	}

	return usecase.NewCartSession(capacity, cart), nil
}

func (m *mealSelection) CatalogForChild(ctx context.Context, childID string) (*entity.RecommendedProducts, error) {
	catalog, err := m.products.RecommendedForChild(ctx, childID)
	if err != nil {
		return nil, &usecase.UserError{
			Message: "We had an issue loading your bundle info, please reload the page",
			Cause:   err,
		}
	}

	return catalog, nil
}

// Submit commits a finished session. The bundle upsert goes first so the
// serving capacity on record always matches the cart being saved; if either
// write fails the store state for the other is untouched.
func (m *mealSelection) Submit(ctx context.Context, session *usecase.CartSession, bundle entity.SubscriptionCreation) error {
	if err := session.ReadyToSubmit(); err != nil {
		return err
	}

	if err := m.subscriptions.CreateSubscription(ctx, bundle); err != nil {
		return err
	}

	cart := session.Cart()

	return m.carts.UpdateCartLineItems(ctx, entity.CartUpdate{
		CartID:    cart.CartID,
		Customer:  bundle.Customer,
		LineItems: cart.LineItems,
	})
}
