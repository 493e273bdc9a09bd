package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
	"sprout/internal/store"
	"sprout/internal/usecase"
	"sprout/internal/util"

	"go.uber.org/fx"
)

const (
	errLatestOrders  = "There was an error loading your orders. Please refresh the page"
	errOrderSummary  = "There was an error loading your order summary. Please refresh the page"
	errShippingRates = "There was an error fetching shipping rates. Please refresh the page"
)

type orderReview struct {
	subscriptions *store.SubscriptionStore
	carts         *store.CartStore
	orders        repository.OrderRepository
	logger        *slog.Logger
}

// OrderParams holds dependencies for the order usecase, injected by Fx.
type OrderParams struct {
	fx.In

	Subscriptions *store.SubscriptionStore
	Carts         *store.CartStore
	Orders        repository.OrderRepository
	Logger        *slog.Logger
}

// NewOrderUsecase creates the order review workflow.
func NewOrderUsecase(params OrderParams) usecase.OrderUsecase {
	return &orderReview{
		subscriptions: params.Subscriptions,
		carts:         params.Carts,
		orders:        params.Orders,
		logger:        params.Logger,
	}
}

func (o *orderReview) LatestOrders(ctx context.Context, customerID string, childIDs []string) ([]entity.Order, error) {
	orders := make([]entity.Order, len(childIDs))
	errs := make([]error, len(childIDs))
	var wg sync.WaitGroup
	for i, childID := range childIDs {
		wg.Add(1)
		go func(i int, childID string) {
			defer wg.Done()
			order, err := o.orders.Latest(ctx, customerID, childID)
			if err != nil {
				errs[i] = err

				return
			}
			orders[i] = *order
		}(i, childID)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, &usecase.UserError{Message: errLatestOrders, Cause: err}
	}

	return orders, nil
}

func (o *orderReview) Summary(ctx context.Context, customerID, discountCode string) (*entity.OrderSummary, error) {
	summary, err := o.orders.Summary(ctx, customerID, discountCode)
	if err != nil {
		return nil, &usecase.UserError{Message: errOrderSummary, Cause: err}
	}

	return summary, nil
}

func (o *orderReview) ShippingRates(ctx context.Context) ([]entity.ShippingRate, error) {
	rates, err := o.orders.ShippingRates(ctx)
	if err != nil {
		return nil, &usecase.UserError{Message: errShippingRates, Cause: err}
	}

	return rates, nil
}

// SummaryLines builds the checkout review from store state. Children without
// both a subscription and a cart are skipped. The meal-plan line is priced
// over recipe items only; every carted add-on gets its own line.
func (o *orderReview) SummaryLines() []entity.SummaryLine {
	sub := o.subscriptions.Snapshot()
	carts := o.carts.Snapshot()

	var lines []entity.SummaryLine
	for _, child := range sub.Customer.Children {
		subscription, hasSub := sub.Subscriptions[child.ID]
		cart, hasCart := carts.Carts[child.ID]
		if !hasSub || !hasCart {
			continue
		}

		lines = append(lines, entity.SummaryLine{
			CustomerID:  subscription.Customer,
			CartID:      cart.CartID,
			ChildID:     child.ID,
			Title:       child.FirstName + "'s Meal Plan",
			Description: fmt.Sprintf("%d Meals • Every %d Weeks", subscription.NumberOfServings, subscription.Frequency),
			Price:       mealPlanPrice(cart),
			IsMealPlan:  true,
		})

		for _, item := range cart.LineItems {
			if item.Product == nil || item.Product.IsRecipe() {
				continue
			}
			quantity := item.Quantity
			if quantity == 0 {
				quantity = 1
			}
			price := variantPrice(item)
			title := child.FirstName + "'s " + item.Product.Title
			if item.Product.ShowVariants && item.ProductVariant != nil {
				title += " (" + item.ProductVariant.Title + ")"
			}
			lines = append(lines, entity.SummaryLine{
				CustomerID:  subscription.Customer,
				ProductID:   item.Product.ID,
				CartID:      cart.CartID,
				ChildID:     child.ID,
				Title:       title,
				Description: fmt.Sprintf("%dx at $%s", quantity, util.FormatAmount(price)),
				Price:       util.Round2(price * float64(quantity)),
				IsMealPlan:  false,
			})
		}
	}

	return lines
}

// mealPlanPrice sums price times quantity over recipe items only, rounded
// to cents.
func mealPlanPrice(cart entity.Cart) float64 {
	total := 0.0
	for _, item := range cart.LineItems {
		if item.Product == nil || !item.Product.IsRecipe() {
			continue
		}
		total = util.Round2(total + variantPrice(item)*float64(item.Quantity))
	}

	return total
}

func variantPrice(item entity.LineItem) float64 {
	if item.ProductVariant == nil {
		return 0
	}

	return item.ProductVariant.Price
}
