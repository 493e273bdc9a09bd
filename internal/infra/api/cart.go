package api

import (
	"context"
	"net/http"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
)

type cartRepository struct {
	client *Client
}

// NewCartRepository creates the cart resource implementation.
func NewCartRepository(client *Client) repository.CartRepository {
	return &cartRepository{client: client}
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID string) ([]entity.Cart, error) {
	if customerID == "" {
		return nil, errors.New("customer id is required")
	}

	var carts []entity.Cart
	path := "v1/carts/" + queryArgs(map[string]string{"customer": customerID})
	if _, err := r.client.get(ctx, path, &carts); err != nil {
		return nil, err
	}

	return carts, nil
}

func (r *cartRepository) UpdateLineItems(ctx context.Context, payload entity.CartUpdate) (*entity.Cart, error) {
	if payload.CartID == "" || payload.Customer == "" {
		return nil, errors.New("cart id and customer id are required")
	}

	var cart entity.Cart
	path := "v1/carts/" + payload.CartID + "/" + queryArgs(map[string]string{"customer": payload.Customer})
	if _, err := r.client.patch(ctx, path, payload, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

type subscriptionRepository struct {
	client *Client
}

// NewSubscriptionRepository creates the subscription resource implementation.
func NewSubscriptionRepository(client *Client) repository.SubscriptionRepository {
	return &subscriptionRepository{client: client}
}

func (r *subscriptionRepository) Create(ctx context.Context, payload entity.SubscriptionCreation) (*entity.Subscription, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	var sub entity.Subscription
	status, err := r.client.post(ctx, "v1/customers-subscriptions/", payload, &sub)
	if err != nil {
		return nil, err
	}
	// The backend upserts on the customer/child key; 201 means this child
	// had no subscription yet.
	sub.IsNew = status == http.StatusCreated

	return &sub, nil
}

func (r *subscriptionRepository) UpdateChargeDate(ctx context.Context, subscriptionID, nextOrderChargeDate string) (*entity.Subscription, error) {
	if subscriptionID == "" {
		return nil, errors.New("subscription id is required")
	}

	body := map[string]string{"nextOrderChargeDate": nextOrderChargeDate}
	var sub entity.Subscription
	if _, err := r.client.patch(ctx, "v1/customers-subscriptions/"+subscriptionID+"/", body, &sub); err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepository) Cancel(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	if subscriptionID == "" {
		return nil, errors.New("subscription id is required")
	}

	var sub entity.Subscription
	if _, err := r.client.put(ctx, "v1/customers-subscriptions/"+subscriptionID+"/cancel/", nil, &sub); err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *subscriptionRepository) Precancel(ctx context.Context, subscriptionID string) (*entity.PrecancelURL, error) {
	if subscriptionID == "" {
		return nil, errors.New("subscription id is required")
	}

	var precancel entity.PrecancelURL
	if _, err := r.client.get(ctx, "v1/customers-subscriptions/"+subscriptionID+"/precancel/", &precancel); err != nil {
		return nil, err
	}

	return &precancel, nil
}

func (r *subscriptionRepository) Reactivate(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	if subscriptionID == "" {
		return nil, errors.New("subscription id is required")
	}

	var sub entity.Subscription
	if _, err := r.client.put(ctx, "v1/customers-subscriptions/"+subscriptionID+"/reactivate/", nil, &sub); err != nil {
		return nil, err
	}

	return &sub, nil
}
