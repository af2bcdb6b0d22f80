package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shopcart/internal/cache"
	apperrors "shopcart/internal/errors"
	"shopcart/internal/model"
	"shopcart/internal/repository"
)

const cartCacheTTL = 5 * time.Minute

// CartService handles the user's active cart.
type CartService interface {
	AddToCart(ctx context.Context, userID, productID uint) error
	GetCart(ctx context.Context, userID uint) (*model.CartView, error)
	RemoveFromCart(ctx context.Context, userID, cartItemID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       *cache.Client
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	cache *cache.Client,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cache:       cache,
	}
}

// AddToCart puts one unit of the product into the active cart, opening the
// cart when the user has none.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uint) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}

	err := s.cartRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.CartRepository) error {
		cart, err := lockActiveCart(ctx, txRepo, userID)
		if err != nil {
			return err
		}
		return addItem(ctx, txRepo, cart.ID, productID, 1)
	})
	if err != nil {
		return err
	}

	invalidateCart(ctx, s.cache, userID)
	return nil
}

// GetCart returns the active cart lines, newest first. A user without an
// active cart gets an empty view.
func (s *cartService) GetCart(ctx context.Context, userID uint) (*model.CartView, error) {
	key := cartViewKey(ctx, s.cache, userID)
	var cached model.CartView
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	view := &model.CartView{Items: []model.CartLine{}, Total: model.Total(nil)}
	cart, err := s.cartRepo.FindActive(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find active cart: %w", err)
	}
	if cart != nil {
		lines, err := s.cartRepo.ListLines(ctx, cart.ID)
		if err != nil {
			return nil, fmt.Errorf("list cart lines: %w", err)
		}
		view.CartID = cart.ID
		view.Items = lines
		view.Total = model.Total(lines)
	}

	s.cache.SetJSON(ctx, key, view, cartCacheTTL)
	return view, nil
}

// RemoveFromCart deletes a line of the user's active cart.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, cartItemID uint) error {
	cart, err := s.cartRepo.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCartItemNotFound
		}
		return fmt.Errorf("find active cart: %w", err)
	}

	deleted, err := s.cartRepo.DeleteItem(ctx, cart.ID, cartItemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if !deleted {
		return apperrors.ErrCartItemNotFound
	}

	invalidateCart(ctx, s.cache, userID)
	return nil
}

// ClearCart empties the active cart. Clearing without a cart is a no-op.
func (s *cartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.cartRepo.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find active cart: %w", err)
	}

	if err := s.cartRepo.DeleteItems(ctx, cart.ID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	invalidateCart(ctx, s.cache, userID)
	return nil
}

// cartViewKey must be resolved before the database read. A view built from
// rows older than a concurrent write then lands under a key that write has
// already orphaned.
func cartViewKey(ctx context.Context, c *cache.Client, userID uint) string {
	return cache.CartKey(userID,
		c.Version(ctx, cache.CatalogVersionKey),
		c.Version(ctx, cache.CartVersionKey(userID)))
}

// invalidateCart orphans every cached view of the user's active cart.
func invalidateCart(ctx context.Context, c *cache.Client, userID uint) {
	_ = c.Incr(ctx, cache.CartVersionKey(userID))
}

// lockActiveCart locks the user and returns the active cart, creating it
// when missing. Must run inside a transaction.
func lockActiveCart(ctx context.Context, txRepo repository.CartRepository, userID uint) (*model.Cart, error) {
	if err := txRepo.LockUser(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}

	cart, err := txRepo.FindActive(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find active cart: %w", err)
	}

	cart = &model.Cart{UserID: userID, Status: model.CartStatusActive}
	if err := txRepo.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// addItem merges quantity units of a product into a cart.
func addItem(ctx context.Context, txRepo repository.CartRepository, cartID, productID uint, quantity int) error {
	existing, err := txRepo.FindItem(ctx, cartID, productID)
	if err == nil {
		if err := txRepo.IncrementItem(ctx, existing.ID, quantity); err != nil {
			return fmt.Errorf("increment cart item: %w", err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find cart item: %w", err)
	}

	item := &model.CartItem{
		CartID:    &cartID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    model.ItemStatusInCart,
	}
	if err := txRepo.CreateItem(ctx, item); err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}
