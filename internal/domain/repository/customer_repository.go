// Package repository defines the interfaces for the remote resource layer.
// These interfaces act as a contract between the stores/usecases and the
// REST API implementations in internal/infra/api.
package repository

import (
	"context"

	"sprout/internal/domain/entity"
	"sprout/internal/errors"
)

// ErrChildExists is returned when a create is attempted for a child that
// already carries a server id.
var ErrChildExists = errors.New("child already exists")

// CustomerRepository defines the customer resource operations.
type CustomerRepository interface {
	// Create registers a new customer from the first onboarding form.
	Create(ctx context.Context, payload entity.CustomerCreation) (*entity.Customer, error)

	// CurrentUser retrieves the customer attached to the session cookie.
	CurrentUser(ctx context.Context) (*entity.Customer, error)

	// Update patches a customer record with the non-nil fields of the payload.
	Update(ctx context.Context, payload entity.CustomerUpdate) (*entity.Customer, error)

	// SetPassword sets the customer password. Onboarding only.
	SetPassword(ctx context.Context, customerID, password string) error
}

// ChildRepository defines the household child resource operations.
type ChildRepository interface {
	// Create persists a placeholder child, attaching the parent id.
	Create(ctx context.Context, child entity.Child, parentID string) (*entity.Child, error)

	// Update patches an existing child by server id.
	Update(ctx context.Context, payload entity.ChildUpdate) (*entity.Child, error)

	// Delete removes a child. Only valid before a subscription exists for it.
	Delete(ctx context.Context, childID string) error
}

// AddressRepository defines the shipping address resource operations.
type AddressRepository interface {
	Create(ctx context.Context, address entity.Address) (*entity.Address, error)
	Update(ctx context.Context, address entity.Address) (*entity.Address, error)
}
