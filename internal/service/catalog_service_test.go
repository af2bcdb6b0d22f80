package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "shopcart/internal/errors"
)

func TestCatalogService_Categories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCatalogService(f.categories, f.products, nil)

	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	_, err := svc.AddCategory(ctx, alice.ID, "   ")
	assert.ErrorIs(t, err, apperrors.ErrCategoryNameRequired)

	fruit, err := svc.AddCategory(ctx, alice.ID, "  Fruit ")
	require.NoError(t, err)
	assert.Equal(t, "Fruit", fruit.Name)
	assert.Equal(t, alice.ID, fruit.UserID)

	_, err = svc.AddCategory(ctx, alice.ID, "Dairy")
	require.NoError(t, err)
	_, err = svc.AddCategory(ctx, bob.ID, "Tools")
	require.NoError(t, err)

	categories, err := svc.ListCategories(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Fruit", categories[0].Name)
	assert.Equal(t, "Dairy", categories[1].Name)

	empty, err := svc.ListCategories(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCatalogService(f.categories, f.products, nil)

	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	fruit, err := svc.AddCategory(ctx, alice.ID, "Fruit")
	require.NoError(t, err)

	apple, err := svc.AddProduct(ctx, ProductInput{Name: "Apple", Price: dec("1.25"), CategoryID: fruit.ID})
	require.NoError(t, err)
	require.NotNil(t, apple.CategoryID)

	err = svc.DeleteCategory(ctx, bob.ID, fruit.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)

	require.NoError(t, svc.DeleteCategory(ctx, alice.ID, fruit.ID))

	products, err := svc.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].CategoryID)
	assert.Nil(t, products[0].CategoryName)

	err = svc.DeleteCategory(ctx, alice.ID, fruit.ID)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestCatalogService_AddProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCatalogService(f.categories, f.products, nil)

	alice := f.user(t, "alice")
	fruit, err := svc.AddCategory(ctx, alice.ID, "Fruit")
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{"blank name", ProductInput{Name: " ", Price: dec("1")}, apperrors.ErrProductNameRequired},
		{"zero price", ProductInput{Name: "Apple", Price: decimal.Zero}, apperrors.ErrInvalidPrice},
		{"negative price", ProductInput{Name: "Apple", Price: dec("-2")}, apperrors.ErrInvalidPrice},
		{"unknown category", ProductInput{Name: "Apple", Price: dec("1"), CategoryID: 999}, apperrors.ErrCategoryNotFound},
		{"uncategorized", ProductInput{Name: "Bread", Price: dec("3.10")}, nil},
		{"categorized", ProductInput{Name: " Apple ", Price: dec("1.25"), CategoryID: fruit.ID}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := svc.AddProduct(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, product)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, product.ID)
		})
	}

	products, err := svc.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Bread", products[0].Name)
	assert.Nil(t, products[0].CategoryName)
	assert.True(t, dec("3.10").Equal(products[0].Price), products[0].Price.String())

	assert.Equal(t, "Apple", products[1].Name)
	require.NotNil(t, products[1].CategoryName)
	assert.Equal(t, "Fruit", *products[1].CategoryName)
	assert.Equal(t, fruit.ID, *products[1].CategoryID)
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCatalogService(f.categories, f.products, nil)

	alice := f.user(t, "alice")
	fruit, err := svc.AddCategory(ctx, alice.ID, "Fruit")
	require.NoError(t, err)
	apple, err := svc.AddProduct(ctx, ProductInput{Name: "Apple", Price: dec("1.25"), CategoryID: fruit.ID})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, 0, ProductInput{Name: "X", Price: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrMissingProductID)

	_, err = svc.UpdateProduct(ctx, 999, ProductInput{Name: "X", Price: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)

	_, err = svc.UpdateProduct(ctx, apple.ID, ProductInput{Name: "Apple", Price: dec("0")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)

	updated, err := svc.UpdateProduct(ctx, apple.ID, ProductInput{Name: "Green Apple", Price: dec("1.75")})
	require.NoError(t, err)
	assert.Equal(t, apple.ID, updated.ID)
	assert.Nil(t, updated.CategoryID)

	stored, err := f.products.FindByID(ctx, apple.ID)
	require.NoError(t, err)
	assert.Equal(t, "Green Apple", stored.Name)
	assert.True(t, dec("1.75").Equal(stored.Price), stored.Price.String())
	assert.Nil(t, stored.CategoryID)
}

func TestCatalogService_UpdateProductCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewCatalogService(f.categories, f.products, nil)

	alice := f.user(t, "alice")
	fruit, err := svc.AddCategory(ctx, alice.ID, "Fruit")
	require.NoError(t, err)
	apple, err := svc.AddProduct(ctx, ProductInput{Name: "Apple", Price: dec("1.25")})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateProductCategory(ctx, 0, fruit.ID), apperrors.ErrInvalidProductCategory)
	assert.ErrorIs(t, svc.UpdateProductCategory(ctx, apple.ID, 0), apperrors.ErrInvalidProductCategory)
	assert.ErrorIs(t, svc.UpdateProductCategory(ctx, 999, fruit.ID), apperrors.ErrProductNotFound)
	assert.ErrorIs(t, svc.UpdateProductCategory(ctx, apple.ID, 999), apperrors.ErrCategoryNotFound)

	require.NoError(t, svc.UpdateProductCategory(ctx, apple.ID, fruit.ID))
	require.NoError(t, svc.UpdateProductCategory(ctx, apple.ID, fruit.ID))

	stored, err := f.products.FindByID(ctx, apple.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CategoryID)
	assert.Equal(t, fruit.ID, *stored.CategoryID)
}
