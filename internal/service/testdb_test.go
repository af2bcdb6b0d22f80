package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "shopcart/internal/db"
	"shopcart/internal/model"
	"shopcart/internal/repository"
)

// newTestDB opens a migrated in-memory sqlite database. A single connection
// keeps every query on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, appdb.Migrate(gormDB))
	return gormDB
}

type fixture struct {
	db         *gorm.DB
	users      repository.UserRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	carts      repository.CartRepository
}

func newFixture(t *testing.T) *fixture {
	gormDB := newTestDB(t)
	return &fixture{
		db:         gormDB,
		users:      repository.NewUserRepository(gormDB),
		categories: repository.NewCategoryRepository(gormDB),
		products:   repository.NewProductRepository(gormDB),
		carts:      repository.NewCartRepository(gormDB),
	}
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) product(t *testing.T, name, price string) *model.Product {
	t.Helper()
	p := &model.Product{Name: name, Price: decimal.RequireFromString(price)}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) activeCarts(t *testing.T, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Cart{}).
		Where("user_id = ? AND status = ?", userID, model.CartStatusActive).
		Count(&n).Error)
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
