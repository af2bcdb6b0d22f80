package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	apperrors "shopcart/internal/errors"
	"shopcart/internal/model"
)

const defaultUsername = "User"

// DashboardService assembles the shop page for a user.
type DashboardService interface {
	GetUserFullData(ctx context.Context, userID uint) (*model.Dashboard, error)
}

type dashboardService struct {
	users   UserService
	catalog CatalogService
	carts   CartService
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(users UserService, catalog CatalogService, carts CartService) DashboardService {
	return &dashboardService{users: users, catalog: catalog, carts: carts}
}

// GetUserFullData loads username, categories, products and the active cart
// concurrently.
func (s *dashboardService) GetUserFullData(ctx context.Context, userID uint) (*model.Dashboard, error) {
	dashboard := &model.Dashboard{Username: defaultUsername}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}
	if user != nil && user.Username != "" {
		dashboard.Username = user.Username
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := s.catalog.ListCategories(gctx, userID)
		dashboard.Categories = categories
		return err
	})
	g.Go(func() error {
		products, err := s.catalog.GetProducts(gctx)
		dashboard.Products = products
		return err
	})
	g.Go(func() error {
		cart, err := s.carts.GetCart(gctx, userID)
		if cart != nil {
			dashboard.Cart = *cart
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}
