package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	_ "shopcart/docs" // swagger docs

	"shopcart/internal/cache"
	"shopcart/internal/config"
	"shopcart/internal/db"
	"shopcart/internal/handler"
	"shopcart/internal/logging"
	"shopcart/internal/repository"
	"shopcart/internal/router"
	"shopcart/internal/service"
)

// @title Shopcart API
// @version 1.0
// @description Shopping cart API: categories, products, a per-user active cart and order status tracking.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey UserCookie
// @in cookie
// @name user_id
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("logging: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Warn("SHOP_RESET_DB=true detected, dropping all tables")
		db.Reset(gormDB)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unavailable, serving without cache")
	}
	cancelPing()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, cacheClient)
	cartService := service.NewCartService(cartRepo, productRepo, cacheClient)
	orderService := service.NewOrderService(cartRepo, cacheClient)
	dashboardService := service.NewDashboardService(userService, catalogService, cartService)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, userService, router.Handlers{
		Session: handler.NewSessionHandler(userService, dashboardService, cfg.CookieSecure),
		Catalog: handler.NewCatalogHandler(catalogService),
		Cart:    handler.NewCartHandler(cartService),
		Order:   handler.NewOrderHandler(orderService),
	})

	log.Infof("Swagger documentation available at: %s", cfg.SwaggerURL())

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	log.Info("server stopped")
}
