package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"shopcart/internal/cache"
	"shopcart/internal/config"
	"shopcart/internal/db"
	"shopcart/internal/logging"
	"shopcart/internal/repository"
	"shopcart/internal/service"
)

// seedProduct is one demo catalog entry, grouped under its category name.
type seedProduct struct {
	Category string
	Name     string
	Price    string
}

var demoCatalog = []seedProduct{
	{Category: "Fruit", Name: "Apple", Price: "0.60"},
	{Category: "Fruit", Name: "Banana", Price: "0.35"},
	{Category: "Bakery", Name: "Sourdough loaf", Price: "4.20"},
	{Category: "Bakery", Name: "Croissant", Price: "1.80"},
	{Category: "Dairy", Name: "Whole milk 1L", Price: "1.15"},
	{Category: "", Name: "Gift card", Price: "25.00"},
}

func main() {
	app := &cli.App{
		Name:  "seed",
		Usage: "create a demo user with categories and products",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "username",
				Value: "demo",
				Usage: "user that owns the seeded categories",
			},
			&cli.StringFlag{
				Name:    "dsn",
				Usage:   "MySQL DSN, overrides SHOP_MYSQL_DSN",
				EnvVars: []string{"SEED_MYSQL_DSN"},
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "drop all tables before seeding",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}

	dsn := cfg.MySQLDSN
	if c.IsSet("dsn") {
		dsn = c.String("dsn")
	}

	gormDB, err := db.NewMySQL(dsn)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	log.Info("Connected to database")

	if c.Bool("reset") {
		db.Reset(gormDB)
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	// Writes go through the server's redis so its cached listings are dropped.
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unavailable, a running server may serve stale listings until they expire")
	}
	cancelPing()

	productRepo := repository.NewProductRepository(gormDB)
	users := service.NewUserService(repository.NewUserRepository(gormDB), cacheClient)
	catalog := service.NewCatalogService(
		repository.NewCategoryRepository(gormDB),
		productRepo,
		cacheClient,
	)

	user, err := users.ConnectUser(ctx, c.String("username"))
	if err != nil {
		return fmt.Errorf("connect user: %w", err)
	}

	res, err := seedCatalog(ctx, catalog, productRepo, user.ID)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id":          user.ID,
		"username":         user.Username,
		"categories":       res.Categories,
		"products_created": res.Created,
		"products_updated": res.Updated,
	}).Info("Seed completed successfully")
	return nil
}

// seedResult counts what a seed run changed.
type seedResult struct {
	Categories int
	Created    int
	Updated    int
}

// seedCatalog creates the user's missing demo categories, then creates each
// demo product or updates the existing product with the same name.
func seedCatalog(ctx context.Context, catalog service.CatalogService, products repository.ProductRepository, userID uint) (seedResult, error) {
	var res seedResult

	existing, err := catalog.ListCategories(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("list categories: %w", err)
	}
	ids := make(map[string]uint, len(existing))
	for _, cat := range existing {
		ids[cat.Name] = cat.ID
	}

	for _, item := range demoCatalog {
		var categoryID uint
		if item.Category != "" {
			id, ok := ids[item.Category]
			if !ok {
				cat, err := catalog.AddCategory(ctx, userID, item.Category)
				if err != nil {
					return res, fmt.Errorf("add category %q: %w", item.Category, err)
				}
				id = cat.ID
				ids[item.Category] = id
				res.Categories++
			}
			categoryID = id
		}

		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return res, fmt.Errorf("price of %q: %w", item.Name, err)
		}
		in := service.ProductInput{Name: item.Name, Price: price, CategoryID: categoryID}

		current, err := products.FindByName(ctx, item.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return res, fmt.Errorf("find product %q: %w", item.Name, err)
		}
		if current != nil {
			if _, err := catalog.UpdateProduct(ctx, current.ID, in); err != nil {
				return res, fmt.Errorf("update product %q: %w", item.Name, err)
			}
			res.Updated++
			continue
		}
		if _, err := catalog.AddProduct(ctx, in); err != nil {
			return res, fmt.Errorf("add product %q: %w", item.Name, err)
		}
		res.Created++
	}
	return res, nil
}
