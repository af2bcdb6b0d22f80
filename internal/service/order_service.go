package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopcart/internal/cache"
	apperrors "shopcart/internal/errors"
	"shopcart/internal/model"
	"shopcart/internal/repository"
)

// OrderService moves carts through the order lifecycle.
type OrderService interface {
	// ConfirmOrder checks out the active cart and opens a fresh one.
	ConfirmOrder(ctx context.Context, userID uint) (*model.Cart, error)
	UpdateOrderStatus(ctx context.Context, userID, cartID uint, status string) (*model.Cart, error)
	// GetOrders lists checked-out carts newest first. An empty status lists all.
	GetOrders(ctx context.Context, userID uint, status string) ([]model.Order, error)
	// RepeatOrder copies a completed order's items into the active cart.
	RepeatOrder(ctx context.Context, userID, cartID uint) error
}

type orderService struct {
	cartRepo repository.CartRepository
	cache    *cache.Client
}

// NewOrderService creates a new order service.
func NewOrderService(cartRepo repository.CartRepository, cache *cache.Client) OrderService {
	return &orderService{
		cartRepo: cartRepo,
		cache:    cache,
	}
}

func (s *orderService) ConfirmOrder(ctx context.Context, userID uint) (*model.Cart, error) {
	var confirmed *model.Cart
	var next *model.Cart

	err := s.cartRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.CartRepository) error {
		if err := txRepo.LockUser(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}

		cart, err := txRepo.FindActive(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNoActiveCart
			}
			return fmt.Errorf("find active cart: %w", err)
		}

		count, err := txRepo.CountItems(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("count cart items: %w", err)
		}
		if count == 0 {
			return apperrors.ErrCartEmpty
		}

		if err := txRepo.UpdateStatus(ctx, cart.ID, model.CartStatusWaitingPayment); err != nil {
			return fmt.Errorf("update cart status: %w", err)
		}
		cart.Status = model.CartStatusWaitingPayment

		next = &model.Cart{UserID: userID, Status: model.CartStatusActive}
		if err := txRepo.Create(ctx, next); err != nil {
			return fmt.Errorf("create cart: %w", err)
		}

		confirmed = cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateCart(ctx, s.cache, userID)

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"cart_id":  confirmed.ID,
		"new_cart": next.ID,
	}).Info("order confirmed, new empty cart created")
	return confirmed, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, userID, cartID uint, status string) (*model.Cart, error) {
	next, ok := model.ParseCartStatus(status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}

	var updated *model.Cart
	err := s.cartRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.CartRepository) error {
		cart, err := txRepo.FindByIDForUser(ctx, cartID, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrOrderNotFound
			}
			return fmt.Errorf("find order: %w", err)
		}

		updated = cart
		if cart.Status == next {
			return nil
		}
		if !cart.Status.CanTransitionTo(next) {
			return fmt.Errorf("%s -> %s: %w", cart.Status, next, apperrors.ErrInvalidTransition)
		}

		if err := txRepo.UpdateStatus(ctx, cart.ID, next); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"cart_id": cart.ID,
			"from":    cart.Status,
			"to":      next,
		}).Info("order status changed")
		cart.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *orderService) GetOrders(ctx context.Context, userID uint, status string) ([]model.Order, error) {
	var filter *model.CartStatus
	if status != "" {
		parsed, ok := model.ParseCartStatus(status)
		if !ok || !parsed.IsOrder() {
			return nil, apperrors.ErrInvalidStatus
		}
		filter = &parsed
	}

	carts, err := s.cartRepo.ListOrders(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]model.Order, 0, len(carts))
	if len(carts) == 0 {
		return orders, nil
	}

	ids := make([]uint, 0, len(carts))
	for _, c := range carts {
		ids = append(ids, c.ID)
	}
	lines, err := s.cartRepo.ListLines(ctx, ids...)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}

	byCart := make(map[uint][]model.CartLine, len(carts))
	for _, l := range lines {
		byCart[l.CartID] = append(byCart[l.CartID], l)
	}

	for _, c := range carts {
		items := byCart[c.ID]
		if items == nil {
			items = []model.CartLine{}
		}
		orders = append(orders, model.Order{
			CartID:    c.ID,
			Status:    c.Status,
			CreatedAt: c.CreatedAt,
			Items:     items,
			Total:     model.Total(items),
		})
	}
	return orders, nil
}

func (s *orderService) RepeatOrder(ctx context.Context, userID, cartID uint) error {
	order, err := s.cartRepo.FindByIDForUser(ctx, cartID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOrderNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}
	if order.Status != model.CartStatusCompleted {
		return apperrors.ErrOrderNotRepeatable
	}

	lines, err := s.cartRepo.ListLines(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("list order lines: %w", err)
	}

	err = s.cartRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.CartRepository) error {
		cart, err := lockActiveCart(ctx, txRepo, userID)
		if err != nil {
			return err
		}
		// Oldest line first so the rebuilt cart keeps the same line sequence.
		for i := len(lines) - 1; i >= 0; i-- {
			if err := addItem(ctx, txRepo, cart.ID, lines[i].ProductID, lines[i].Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateCart(ctx, s.cache, userID)

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"cart_id": order.ID,
		"items":   len(lines),
	}).Info("order repeated into active cart")
	return nil
}
