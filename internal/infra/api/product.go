package api

import (
	"context"
	"net/http"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
)

type productRepository struct {
	client *Client
}

// NewProductRepository creates the catalog resource implementation.
func NewProductRepository(client *Client) repository.ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) List(ctx context.Context, args map[string]string) ([]entity.Product, error) {
	var products []entity.Product
	if _, err := r.client.get(ctx, "v1/products/"+queryArgs(args), &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) RecommendedForChild(ctx context.Context, childID string) (*entity.RecommendedProducts, error) {
	if childID == "" {
		return nil, errors.New("child id is required")
	}

	var recommended entity.RecommendedProducts
	path := "v1/customers-children/" + childID + "/recommended_products/"
	if _, err := r.client.get(ctx, path, &recommended); err != nil {
		return nil, err
	}

	return &recommended, nil
}

type ingredientRepository struct {
	client *Client
}

// NewIngredientRepository creates the allergy-vocabulary search implementation.
func NewIngredientRepository(client *Client) repository.IngredientRepository {
	return &ingredientRepository{client: client}
}

func (r *ingredientRepository) Search(ctx context.Context, name string) ([]entity.Ingredient, error) {
	var ingredients []entity.Ingredient
	path := "v1/ingredients/" + queryArgs(map[string]string{"name": name})
	if _, err := r.client.get(ctx, path, &ingredients); err != nil {
		return nil, err
	}

	return ingredients, nil
}

type discountRepository struct {
	client *Client
}

// NewDiscountRepository creates the promotional discount implementation.
func NewDiscountRepository(client *Client) repository.DiscountRepository {
	return &discountRepository{client: client}
}

func (r *discountRepository) Primary(ctx context.Context) (*entity.Discount, error) {
	return r.first(ctx, "v1/discounts/"+queryArgs(map[string]string{"primary": "true"}))
}

func (r *discountRepository) ByCodename(ctx context.Context, codename string) (*entity.Discount, error) {
	if codename == "" {
		return nil, errors.New("codename is required")
	}

	return r.first(ctx, "v1/discounts/"+queryArgs(map[string]string{"codename": codename}))
}

func (r *discountRepository) Referral(ctx context.Context) (*entity.Discount, error) {
	var discount entity.Discount
	if _, err := r.client.get(ctx, "v1/discounts/customer/", &discount); err != nil {
		if isNotFound(err) {
			return nil, nil
		}

		return nil, err
	}
	if discount.ID == "" {
		return nil, nil
	}

	return &discount, nil
}

// first fetches a discount list and returns its head, nil when empty.
func (r *discountRepository) first(ctx context.Context, path string) (*entity.Discount, error) {
	var discounts []entity.Discount
	if _, err := r.client.get(ctx, path, &discounts); err != nil {
		if isNotFound(err) {
			return nil, nil
		}

		return nil, err
	}
	if len(discounts) == 0 {
		return nil, nil
	}

	return &discounts[0], nil
}

func isNotFound(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}

	return false
}
