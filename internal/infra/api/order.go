package api

import (
	"context"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
)

type orderRepository struct {
	client *Client
}

// NewOrderRepository creates the order resource implementation.
func NewOrderRepository(client *Client) repository.OrderRepository {
	return &orderRepository{client: client}
}

func (r *orderRepository) Create(ctx context.Context, payload entity.OrderCreation) ([]entity.Order, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	var orders []entity.Order
	if _, err := r.client.post(ctx, "v1/orders/", payload, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) Latest(ctx context.Context, customerID, childID string) (*entity.Order, error) {
	if customerID == "" || childID == "" {
		return nil, errors.New("customer id and child id are required")
	}

	var order entity.Order
	path := "v1/orders/latest/" + queryArgs(map[string]string{
		"customer":       customerID,
		"customer_child": childID,
	})
	if _, err := r.client.get(ctx, path, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) Summary(ctx context.Context, customerID, discountCode string) (*entity.OrderSummary, error) {
	if customerID == "" {
		return nil, errors.New("customer id is required")
	}

	args := map[string]string{"customer": customerID}
	if discountCode != "" {
		args["discount"] = discountCode
	}

	var summary entity.OrderSummary
	if _, err := r.client.get(ctx, "v1/orders/summary/"+queryArgs(args), &summary); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (r *orderRepository) ShippingRates(ctx context.Context) ([]entity.ShippingRate, error) {
	var rates []entity.ShippingRate
	if _, err := r.client.get(ctx, "v1/shipping-rates/", &rates); err != nil {
		return nil, err
	}

	return rates, nil
}

func (r *orderRepository) Discounts(ctx context.Context) ([]entity.Discount, error) {
	var discounts []entity.Discount
	if _, err := r.client.get(ctx, "v1/discounts/", &discounts); err != nil {
		return nil, err
	}

	return discounts, nil
}
