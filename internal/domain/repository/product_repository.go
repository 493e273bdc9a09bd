package repository

import (
	"context"

	"sprout/internal/domain/entity"
)

// ProductRepository defines the catalog resource operations.
type ProductRepository interface {
	// List fetches products filtered by the given query args
	// (e.g. is_active, product_type).
	List(ctx context.Context, queryArgs map[string]string) ([]entity.Product, error)

	// RecommendedForChild fetches the per-child catalog split.
	RecommendedForChild(ctx context.Context, childID string) (*entity.RecommendedProducts, error)
}

// IngredientRepository defines the allergy-vocabulary autocomplete source.
type IngredientRepository interface {
	Search(ctx context.Context, name string) ([]entity.Ingredient, error)
}

// DiscountRepository defines the promotional discount operations.
type DiscountRepository interface {
	// Primary fetches the active primary banner discount, nil when none.
	Primary(ctx context.Context) (*entity.Discount, error)

	// ByCodename resolves a discount by its codename, nil when none.
	ByCodename(ctx context.Context, codename string) (*entity.Discount, error)

	// Referral fetches the current customer's referral discount.
	Referral(ctx context.Context) (*entity.Discount, error)
}
