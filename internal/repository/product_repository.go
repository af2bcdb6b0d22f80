package repository

import (
	"context"

	"gorm.io/gorm"

	"shopcart/internal/model"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	// FindByName returns the oldest product with the given name.
	FindByName(ctx context.Context, name string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateCategory(ctx context.Context, productID, categoryID uint) error
	ListWithCategory(ctx context.Context) ([]model.ProductView, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByID finds a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id ASC").
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Update writes every mutable column, including a nil category.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"category_id": product.CategoryID,
		}).Error
}

// UpdateCategory moves a product to another category.
func (r *productRepository) UpdateCategory(ctx context.Context, productID, categoryID uint) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("category_id", categoryID).Error
}

// ListWithCategory lists all products with their category name, ordered by id.
func (r *productRepository) ListWithCategory(ctx context.Context) ([]model.ProductView, error) {
	products := make([]model.ProductView, 0)
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id, products.name, products.price, products.category_id, categories.name AS category_name, products.created_at").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("products.id ASC").
		Scan(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
