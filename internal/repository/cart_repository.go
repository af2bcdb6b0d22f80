package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopcart/internal/model"
)

// CartRepository defines cart and cart item persistence operations.
type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	FindActive(ctx context.Context, userID uint) (*model.Cart, error)
	FindByIDForUser(ctx context.Context, cartID, userID uint) (*model.Cart, error)
	// UpdateStatus sets the cart status and the derived status of its items.
	UpdateStatus(ctx context.Context, cartID uint, status model.CartStatus) error
	ListOrders(ctx context.Context, userID uint, status *model.CartStatus) ([]model.Cart, error)

	FindItem(ctx context.Context, cartID, productID uint) (*model.CartItem, error)
	CreateItem(ctx context.Context, item *model.CartItem) error
	IncrementItem(ctx context.Context, itemID uint, delta int) error
	DeleteItem(ctx context.Context, cartID, itemID uint) (bool, error)
	DeleteItems(ctx context.Context, cartID uint) error
	CountItems(ctx context.Context, cartID uint) (int64, error)
	// ListLines returns the items of the given carts joined with their
	// products, newest first.
	ListLines(ctx context.Context, cartIDs ...uint) ([]model.CartLine, error)

	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CartRepository) error) error
	// LockUser takes a row lock on the user so cart creation and checkout
	// for one user are serialized.
	LockUser(ctx context.Context, userID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create creates a new cart.
func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// FindActive finds the user's active cart.
func (r *cartRepository) FindActive(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.CartStatusActive).
		Order("id ASC").
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByIDForUser finds a cart by ID owned by the user.
func (r *cartRepository) FindByIDForUser(ctx context.Context, cartID, userID uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, userID).
		First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) UpdateStatus(ctx context.Context, cartID uint, status model.CartStatus) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Cart{}).Where("id = ?", cartID).Update("status", status).Error; err != nil {
		return err
	}
	return db.Model(&model.CartItem{}).Where("cart_id = ?", cartID).Update("status", status.ItemStatus()).Error
}

// ListOrders lists the user's checked-out carts, newest first, optionally
// filtered by status.
func (r *cartRepository) ListOrders(ctx context.Context, userID uint, status *model.CartStatus) ([]model.Cart, error) {
	carts := make([]model.Cart, 0)
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, model.CartStatusActive)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// FindItem finds the line for a product in a cart.
func (r *cartRepository) FindItem(ctx context.Context, cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates a new cart item.
func (r *cartRepository) CreateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// IncrementItem adds delta to the item quantity in place.
func (r *cartRepository) IncrementItem(ctx context.Context, itemID uint, delta int) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// DeleteItem removes an item only if it belongs to cartID.
func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItem{})
	return res.RowsAffected > 0, res.Error
}

// DeleteItems empties a cart.
func (r *cartRepository) DeleteItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error
}

// CountItems counts the lines of a cart.
func (r *cartRepository) CountItems(ctx context.Context, cartID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error
	return count, err
}

func (r *cartRepository) ListLines(ctx context.Context, cartIDs ...uint) ([]model.CartLine, error) {
	lines := make([]model.CartLine, 0)
	if len(cartIDs) == 0 {
		return lines, nil
	}
	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id AS cart_item_id, cart_items.cart_id, cart_items.product_id, products.name AS product_name, products.price, cart_items.quantity, cart_items.created_at").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.cart_id IN ?", cartIDs).
		Order("cart_items.created_at DESC").
		Order("cart_items.id DESC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// WithTransaction executes a function within a database transaction.
func (r *cartRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CartRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &cartRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

// LockUser selects the user row FOR UPDATE. Dialects without row locks
// ignore the clause.
func (r *cartRepository) LockUser(ctx context.Context, userID uint) error {
	var user model.User
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&user, userID).Error
}
