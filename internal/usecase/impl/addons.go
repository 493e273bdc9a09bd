package impl

import (
	"context"
	"log/slog"
	"sync"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
	"sprout/internal/store"
	"sprout/internal/usecase"

	"go.uber.org/fx"
)

type addOnPlanner struct {
	carts    *store.CartStore
	products repository.ProductRepository
	logger   *slog.Logger
}

// AddOnParams holds dependencies for the add-on usecase, injected by Fx.
type AddOnParams struct {
	fx.In

	Carts    *store.CartStore
	Products repository.ProductRepository
	Logger   *slog.Logger
}

// NewAddOnUsecase creates the add-on selection workflow.
func NewAddOnUsecase(params AddOnParams) usecase.AddOnUsecase {
	return &addOnPlanner{
		carts:    params.Carts,
		products: params.Products,
		logger:   params.Logger,
	}
}

func (a *addOnPlanner) LoadAddOns(ctx context.Context) ([]entity.Product, error) {
	return a.products.List(ctx, map[string]string{
		"is_active":    "true",
		"product_type": entity.ProductTypeAddOn,
	})
}

// ExistingSelections intersects each child's cart with the add-on variants
// on offer, so the board starts with what is already carted.
func (a *addOnPlanner) ExistingSelections(addons []entity.Product) map[string]map[string]bool {
	variantIDs := addOnVariantIDs(addons)
	selections := map[string]map[string]bool{}
	for childID, cart := range a.carts.Snapshot().Carts {
		selections[childID] = map[string]bool{}
		for _, item := range cart.LineItems {
			if item.ProductVariant == nil || item.Quantity == 0 {
				continue
			}
			if variantIDs[item.ProductVariant.ID] {
				selections[childID][item.ProductVariant.ID] = true
			}
		}
	}

	return selections
}

// Apply reconciles every child cart against the selection board and saves
// them all concurrently, joining the results. Partial failures leave the
// successfully saved carts in place; the cart store reports the error.
func (a *addOnPlanner) Apply(ctx context.Context, addons []entity.Product, selections map[string]map[string]bool) error {
	snapshot := a.carts.Snapshot()

	reconciled := make([]entity.Cart, 0, len(snapshot.Carts))
	for childID, cart := range snapshot.Carts {
		reconciled = append(reconciled, reconcileAddOns(cart, addons, selections[childID]))
	}

	errs := make([]error, len(reconciled))
	var wg sync.WaitGroup
	for i, cart := range reconciled {
		wg.Add(1)
		go func(i int, cart entity.Cart) {
			defer wg.Done()
			errs[i] = a.carts.UpdateCartLineItems(ctx, entity.CartUpdate{
				CartID:    cart.CartID,
				Customer:  snapshot.Customer,
				LineItems: cart.LineItems,
			})
		}(i, cart)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// reconcileAddOns rewrites one cart to match a selection set over the given
// add-on families: carted variants that were deselected go to quantity zero,
// variants both carted and selected stay as they are, and newly selected
// variants are appended at quantity one.
func reconcileAddOns(cart entity.Cart, addons []entity.Product, selected map[string]bool) entity.Cart {
	variantIDs := addOnVariantIDs(addons)
	out := cart.Clone()

	remaining := make(map[string]bool, len(selected))
	for id := range selected {
		remaining[id] = true
	}

	for i := range out.LineItems {
		item := &out.LineItems[i]
		if item.ProductVariant == nil || !variantIDs[item.ProductVariant.ID] {
			continue
		}
		if selected[item.ProductVariant.ID] {
			delete(remaining, item.ProductVariant.ID)
		} else {
			item.Quantity = 0
		}
	}

	// Append in catalog order so saves are deterministic.
	for _, addon := range addons {
		for _, variant := range addon.Variants {
			if !remaining[variant.ID] {
				continue
			}
			product := addon.Clone()
			v := variant
			out.LineItems = append(out.LineItems, entity.LineItem{
				Product:        &product,
				ProductVariant: &v,
				Quantity:       1,
			})
			delete(remaining, variant.ID)
		}
	}

	return out
}

func addOnVariantIDs(addons []entity.Product) map[string]bool {
	ids := map[string]bool{}
	for _, addon := range addons {
		for _, variant := range addon.Variants {
			ids[variant.ID] = true
		}
	}

	return ids
}
