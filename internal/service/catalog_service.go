package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopcart/internal/cache"
	apperrors "shopcart/internal/errors"
	"shopcart/internal/model"
	"shopcart/internal/repository"
)

const (
	productsCacheTTL   = time.Minute
	categoriesCacheTTL = 5 * time.Minute
)

// ProductInput carries the editable fields of a product. A zero CategoryID
// leaves the product uncategorized.
type ProductInput struct {
	Name       string
	Price      decimal.Decimal
	CategoryID uint
}

// CatalogService handles categories and products.
type CatalogService interface {
	AddCategory(ctx context.Context, userID uint, name string) (*model.Category, error)
	ListCategories(ctx context.Context, userID uint) ([]model.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uint) error
	AddProduct(ctx context.Context, in ProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint, in ProductInput) (*model.Product, error)
	UpdateProductCategory(ctx context.Context, productID, categoryID uint) error
	GetProducts(ctx context.Context) ([]model.ProductView, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        *cache.Client
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	cache *cache.Client,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        cache,
	}
}

// AddCategory creates a category owned by the user.
func (s *catalogService) AddCategory(ctx context.Context, userID uint, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrCategoryNameRequired
	}

	category := &model.Category{Name: name, UserID: userID}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.CategoriesKey(userID))
	return category, nil
}

// ListCategories lists the user's categories with caching.
func (s *catalogService) ListCategories(ctx context.Context, userID uint) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, cache.CategoriesKey(userID), &cached) {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	s.cache.SetJSON(ctx, cache.CategoriesKey(userID), categories, categoriesCacheTTL)
	return categories, nil
}

// DeleteCategory removes the user's category; its products become uncategorized.
func (s *catalogService) DeleteCategory(ctx context.Context, userID, categoryID uint) error {
	deleted, err := s.categoryRepo.DeleteForUser(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if !deleted {
		return apperrors.ErrCategoryNotFound
	}

	_ = s.cache.Delete(ctx, cache.CategoriesKey(userID), cache.ProductsKey)
	return nil
}

// AddProduct validates and creates a catalog product.
func (s *catalogService) AddProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	product, err := s.buildProduct(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.ProductsKey)
	return product, nil
}

// UpdateProduct overwrites name, price and category of an existing product.
func (s *catalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*model.Product, error) {
	if id == 0 {
		return nil, apperrors.ErrMissingProductID
	}
	product, err := s.buildProduct(ctx, in)
	if err != nil {
		return nil, err
	}

	existing, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ID = id
	product.CreatedAt = existing.CreatedAt
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.ProductsKey)
	// Cart views carry product names and prices.
	_ = s.cache.Incr(ctx, cache.CatalogVersionKey)
	return product, nil
}

// UpdateProductCategory moves a product into another category.
func (s *catalogService) UpdateProductCategory(ctx context.Context, productID, categoryID uint) error {
	if productID == 0 || categoryID == 0 {
		return apperrors.ErrInvalidProductCategory
	}
	if _, err := s.findProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return err
	}

	if err := s.productRepo.UpdateCategory(ctx, productID, categoryID); err != nil {
		return fmt.Errorf("update product category: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.ProductsKey)
	return nil
}

// GetProducts lists the catalog with category names, cached briefly.
func (s *catalogService) GetProducts(ctx context.Context) ([]model.ProductView, error) {
	var cached []model.ProductView
	if s.cache.GetJSON(ctx, cache.ProductsKey, &cached) {
		return cached, nil
	}

	products, err := s.productRepo.ListWithCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	s.cache.SetJSON(ctx, cache.ProductsKey, products, productsCacheTTL)
	return products, nil
}

func (s *catalogService) buildProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.ErrProductNameRequired
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidPrice
	}

	product := &model.Product{Name: name, Price: in.Price}
	if in.CategoryID != 0 {
		if err := s.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		categoryID := in.CategoryID
		product.CategoryID = &categoryID
	}
	return product, nil
}

func (s *catalogService) findProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

func (s *catalogService) checkCategory(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}
	return nil
}
