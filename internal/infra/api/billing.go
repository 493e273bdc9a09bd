package api

import (
	"context"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
)

type billingRepository struct {
	client *Client
}

// NewBillingRepository creates the backend billing resource implementation.
func NewBillingRepository(client *Client) repository.BillingRepository {
	return &billingRepository{client: client}
}

func (r *billingRepository) CreatePaymentIntent(ctx context.Context, payload entity.PaymentIntentCreation) (*entity.PaymentIntent, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	var intent entity.PaymentIntent
	if _, err := r.client.post(ctx, "v1/payment-intent/", payload, &intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

func (r *billingRepository) CreateCharge(ctx context.Context, payload entity.ChargeCreation) (*entity.Charge, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	var charge entity.Charge
	if _, err := r.client.post(ctx, "v1/charge/", payload, &charge); err != nil {
		return nil, err
	}

	return &charge, nil
}

func (r *billingRepository) CreatePaymentMethod(ctx context.Context, payload entity.PaymentMethodCreation) (*entity.PaymentMethod, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	var method entity.PaymentMethod
	if _, err := r.client.post(ctx, "v1/payment-method/", payload, &method); err != nil {
		return nil, err
	}

	return &method, nil
}

func (r *billingRepository) LatestPaymentMethod(ctx context.Context, customerID string) (*entity.PaymentMethod, error) {
	if customerID == "" {
		return nil, errors.New("customer id is required")
	}

	var method entity.PaymentMethod
	path := "v1/payment-method/latest/" + queryArgs(map[string]string{"customer": customerID})
	if _, err := r.client.get(ctx, path, &method); err != nil {
		return nil, err
	}

	return &method, nil
}

func (r *billingRepository) ApplyDiscountCode(ctx context.Context, payload entity.CustomerDiscount) error {
	if err := validate.Struct(payload); err != nil {
		return errors.WithStack(err)
	}

	if _, err := r.client.post(ctx, "v1/discounts/customer/", payload, nil); err != nil {
		return err
	}

	return nil
}
