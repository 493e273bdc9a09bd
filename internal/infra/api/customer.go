package api

import (
	"context"

	"sprout/internal/domain/entity"
	"sprout/internal/domain/repository"
	"sprout/internal/errors"
)

type customerRepository struct {
	client *Client
}

// NewCustomerRepository creates the customer resource implementation.
func NewCustomerRepository(client *Client) repository.CustomerRepository {
	return &customerRepository{client: client}
}

func (r *customerRepository) Create(ctx context.Context, payload entity.CustomerCreation) (*entity.Customer, error) {
	if err := validate.Struct(payload); err != nil {
		return nil, errors.WithStack(err)
	}

	var customer entity.Customer
	if _, err := r.client.post(ctx, "v1/customers/", payload, &customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) CurrentUser(ctx context.Context) (*entity.Customer, error) {
	var customer entity.Customer
	if _, err := r.client.get(ctx, "v1/customers/current_user/", &customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, payload entity.CustomerUpdate) (*entity.Customer, error) {
	if payload.ID == "" {
		return nil, errors.New("customer id is required")
	}

	var customer entity.Customer
	if _, err := r.client.patch(ctx, "v1/customers/"+payload.ID+"/", payload, &customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepository) SetPassword(ctx context.Context, customerID, password string) error {
	if customerID == "" {
		return errors.New("customer id is required")
	}

	body := map[string]string{"password": password}
	if _, err := r.client.post(ctx, "v1/customers/"+customerID+"/set_password/", body, nil); err != nil {
		return err
	}

	return nil
}

type childRepository struct {
	client *Client
}

// NewChildRepository creates the household child resource implementation.
func NewChildRepository(client *Client) repository.ChildRepository {
	return &childRepository{client: client}
}

func (r *childRepository) Create(ctx context.Context, child entity.Child, parentID string) (*entity.Child, error) {
	if child.Persisted() {
		return nil, errors.WithStack(repository.ErrChildExists)
	}

	// Placeholder children carry client-side scaffolding; only the fields
	// the backend accepts on create go over the wire.
	body := struct {
		FirstName string `json:"firstName"`
		Parent    string `json:"parent"`
	}{
		FirstName: child.FirstName,
		Parent:    parentID,
	}

	var created entity.Child
	if _, err := r.client.post(ctx, "v1/customers-children/", body, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *childRepository) Update(ctx context.Context, payload entity.ChildUpdate) (*entity.Child, error) {
	if payload.ID == "" {
		return nil, errors.New("child id is required")
	}

	var child entity.Child
	if _, err := r.client.patch(ctx, "v1/customers-children/"+payload.ID+"/", payload, &child); err != nil {
		return nil, err
	}

	return &child, nil
}

func (r *childRepository) Delete(ctx context.Context, childID string) error {
	if childID == "" {
		return errors.New("child id is required")
	}

	if _, err := r.client.delete(ctx, "v1/customers-children/"+childID+"/"); err != nil {
		return err
	}

	return nil
}

type addressRepository struct {
	client *Client
}

// NewAddressRepository creates the shipping address resource implementation.
func NewAddressRepository(client *Client) repository.AddressRepository {
	return &addressRepository{client: client}
}

func (r *addressRepository) Create(ctx context.Context, address entity.Address) (*entity.Address, error) {
	var created entity.Address
	if _, err := r.client.post(ctx, "api/v1/addresses/", address, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *addressRepository) Update(ctx context.Context, address entity.Address) (*entity.Address, error) {
	if address.ID == "" {
		return nil, errors.New("address id is required")
	}

	var updated entity.Address
	if _, err := r.client.put(ctx, "api/v1/addresses/"+address.ID+"/", address, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}
