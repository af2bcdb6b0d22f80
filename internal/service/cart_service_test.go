package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "shopcart/internal/errors"
)

func TestCartService_AddToCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.products, nil)

	user := f.user(t, "alice")
	apple := f.product(t, "Apple", "1.25")
	pear := f.product(t, "Pear", "2.00")

	require.NoError(t, svc.AddToCart(ctx, user.ID, apple.ID))
	require.NoError(t, svc.AddToCart(ctx, user.ID, apple.ID))
	require.NoError(t, svc.AddToCart(ctx, user.ID, pear.ID))

	assert.EqualValues(t, 1, f.activeCarts(t, user.ID))

	view, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	// newest line first
	assert.Equal(t, "Pear", view.Items[0].ProductName)
	assert.Equal(t, 1, view.Items[0].Quantity)
	assert.Equal(t, "Apple", view.Items[1].ProductName)
	assert.Equal(t, 2, view.Items[1].Quantity)
	assert.True(t, dec("4.50").Equal(view.Total), view.Total.String())
	assert.NotZero(t, view.CartID)
}

func TestCartService_AddToCart_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.products, nil)

	user := f.user(t, "bob")
	apple := f.product(t, "Apple", "1.25")

	err := svc.AddToCart(ctx, user.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	err = svc.AddToCart(ctx, 999, apple.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.EqualValues(t, 0, f.activeCarts(t, 999))
}

func TestCartService_GetCart_NoCart(t *testing.T) {
	f := newFixture(t)
	svc := NewCartService(f.carts, f.products, nil)
	user := f.user(t, "carol")

	view, err := svc.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.NotNil(t, view.Items)
	assert.Zero(t, view.CartID)
	assert.True(t, view.Total.IsZero())
}

func TestCartService_RemoveFromCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.products, nil)

	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	apple := f.product(t, "Apple", "1.25")

	require.NoError(t, svc.AddToCart(ctx, alice.ID, apple.ID))
	view, err := svc.GetCart(ctx, alice.ID)
	require.NoError(t, err)
	itemID := view.Items[0].CartItemID

	t.Run("other user's item", func(t *testing.T) {
		require.NoError(t, svc.AddToCart(ctx, bob.ID, apple.ID))
		err := svc.RemoveFromCart(ctx, bob.ID, itemID)
		assert.ErrorIs(t, err, apperrors.ErrCartItemNotFound)
	})

	t.Run("user without cart", func(t *testing.T) {
		carol := f.user(t, "carol")
		err := svc.RemoveFromCart(ctx, carol.ID, itemID)
		assert.ErrorIs(t, err, apperrors.ErrCartItemNotFound)
	})

	t.Run("own item", func(t *testing.T) {
		require.NoError(t, svc.RemoveFromCart(ctx, alice.ID, itemID))
		view, err := svc.GetCart(ctx, alice.ID)
		require.NoError(t, err)
		assert.Empty(t, view.Items)

		err = svc.RemoveFromCart(ctx, alice.ID, itemID)
		assert.ErrorIs(t, err, apperrors.ErrCartItemNotFound)
	})
}

func TestCartService_ClearCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCartService(f.carts, f.products, nil)

	user := f.user(t, "dave")
	require.NoError(t, svc.ClearCart(ctx, user.ID))

	require.NoError(t, svc.AddToCart(ctx, user.ID, f.product(t, "Apple", "1").ID))
	require.NoError(t, svc.AddToCart(ctx, user.ID, f.product(t, "Pear", "2").ID))
	require.NoError(t, svc.ClearCart(ctx, user.ID))

	view, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.EqualValues(t, 1, f.activeCarts(t, user.ID))
}
