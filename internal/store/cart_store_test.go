package store

import (
	"context"
	"testing"

	"sprout/internal/domain/entity"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeItem(productID string, quantity int) entity.LineItem {
	return entity.LineItem{
		Product:  &entity.Product{ID: productID, ProductType: entity.ProductTypeRecipe},
		Quantity: quantity,
	}
}

func TestCartStore_InitStore(t *testing.T) {
	carts := &fakeCartRepo{
		listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
			assert.Equal(t, "cool-guy", customerID)

			return []entity.Cart{
				{CartID: "cart-1", Child: "child-1", LineItems: []entity.LineItem{recipeItem("p1", 2)}},
				{CartID: "cart-2", Child: "child-2"},
			}, nil
		},
	}
	s := newTestCartStore(carts)

	require.NoError(t, s.InitStore(context.Background(), "cool-guy"))

	state := s.Snapshot()
	assert.True(t, state.Init)
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, "cool-guy", state.Customer)
	require.Len(t, state.Carts, 2)
	assert.Equal(t, "cart-1", state.Carts["child-1"].CartID)
}

func TestCartStore_InitStore_Failure(t *testing.T) {
	carts := &fakeCartRepo{
		listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
			return nil, errors.New("boom")
		},
	}
	s := newTestCartStore(carts)

	require.Error(t, s.InitStore(context.Background(), "cool-guy"))

	state := s.Snapshot()
	assert.True(t, state.Init)
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, "There was an error in fetching your orders, please reload the page", state.Err)
}

func TestCartStore_GetChildrenCarts_ClearsPreviousError(t *testing.T) {
	failing := true
	carts := &fakeCartRepo{
		listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
			if failing {
				return nil, errors.New("boom")
			}

			return []entity.Cart{{CartID: "cart-1", Child: "child-1"}}, nil
		},
	}
	s := newTestCartStore(carts)

	require.Error(t, s.GetChildrenCarts(context.Background(), "cool-guy"))
	assert.Equal(t, "There was an error in fetching the cart, please reload the page", s.Snapshot().Err)

	failing = false
	require.NoError(t, s.GetChildrenCarts(context.Background(), "cool-guy"))

	state := s.Snapshot()
	assert.Empty(t, state.Err)
	assert.Equal(t, StatusSuccess, state.Status)
}

func TestCartStore_UpdateCartLineItems(t *testing.T) {
	carts := &fakeCartRepo{
		listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
			return []entity.Cart{
				{CartID: "cart-1", Child: "child-1", LineItems: []entity.LineItem{recipeItem("p1", 1)}},
			}, nil
		},
		updateLineItems: func(ctx context.Context, payload entity.CartUpdate) (*entity.Cart, error) {
			return &entity.Cart{CartID: payload.CartID, Child: "child-1", LineItems: payload.LineItems}, nil
		},
	}
	s := newTestCartStore(carts)
	require.NoError(t, s.InitStore(context.Background(), "cool-guy"))

	err := s.UpdateCartLineItems(context.Background(), entity.CartUpdate{
		CartID:    "cart-1",
		Customer:  "cool-guy",
		LineItems: []entity.LineItem{recipeItem("p1", 3)},
	})
	require.NoError(t, err)

	state := s.Snapshot()
	require.Len(t, state.Carts["child-1"].LineItems, 1)
	assert.Equal(t, 3, state.Carts["child-1"].LineItems[0].Quantity)
}

func TestCartStore_UpdateCartLineItems_FailureLeavesCart(t *testing.T) {
	carts := &fakeCartRepo{
		listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
			return []entity.Cart{
				{CartID: "cart-1", Child: "child-1", LineItems: []entity.LineItem{recipeItem("p1", 2)}},
			}, nil
		},
		updateLineItems: func(ctx context.Context, payload entity.CartUpdate) (*entity.Cart, error) {
			return nil, errors.New("boom")
		},
	}
	s := newTestCartStore(carts)
	require.NoError(t, s.InitStore(context.Background(), "cool-guy"))

	err := s.UpdateCartLineItems(context.Background(), entity.CartUpdate{
		CartID:    "cart-1",
		Customer:  "cool-guy",
		LineItems: []entity.LineItem{recipeItem("p1", 5)},
	})
	require.Error(t, err)

	state := s.Snapshot()
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, "There was an error updating the cart, please try again", state.Err)
	require.Len(t, state.Carts["child-1"].LineItems, 1)
	assert.Equal(t, 2, state.Carts["child-1"].LineItems[0].Quantity)
}

func TestCartStore_UpdateCartLineItems_ServerMessagePassThrough(t *testing.T) {
	carts := &fakeCartRepo{
		updateLineItems: func(ctx context.Context, payload entity.CartUpdate) (*entity.Cart, error) {
			return nil, &serverError{message: "This cart no longer exists"}
		},
	}
	s := newTestCartStore(carts)

	err := s.UpdateCartLineItems(context.Background(), entity.CartUpdate{CartID: "cart-1"})
	require.Error(t, err)

	assert.Equal(t, "This cart no longer exists", s.Snapshot().Err)
}

func TestCartStore_Reset(t *testing.T) {
	carts := &fakeCartRepo{
		listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
			return []entity.Cart{{CartID: "cart-1", Child: "child-1"}}, nil
		},
	}
	s := newTestCartStore(carts)
	require.NoError(t, s.InitStore(context.Background(), "cool-guy"))

	s.Reset()

	state := s.Snapshot()
	assert.False(t, state.Init)
	assert.Empty(t, state.Carts)
	assert.Empty(t, state.Customer)
}

func TestCartStore_SnapshotDoesNotAliasState(t *testing.T) {
	carts := &fakeCartRepo{
		listByCustomer: func(ctx context.Context, customerID string) ([]entity.Cart, error) {
			return []entity.Cart{
				{CartID: "cart-1", Child: "child-1", LineItems: []entity.LineItem{recipeItem("p1", 2)}},
			}, nil
		},
	}
	s := newTestCartStore(carts)
	require.NoError(t, s.InitStore(context.Background(), "cool-guy"))

	snapshot := s.Snapshot()
	snapshot.Carts["child-1"].LineItems[0].Quantity = 99

	assert.Equal(t, 2, s.Snapshot().Carts["child-1"].LineItems[0].Quantity)
}
