package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shopcart/internal/handler"
	"shopcart/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Session *handler.SessionHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Order   *handler.OrderHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, users service.UserService, h Handlers) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/session", h.Session.Connect)
	api.DELETE("/session", h.Session.Disconnect)
	api.GET("/products", h.Catalog.GetProducts)
	api.POST("/products", h.Catalog.AddProduct)
	api.PUT("/products/:id", h.Catalog.UpdateProduct)
	api.PATCH("/products/:id/category", h.Catalog.UpdateProductCategory)

	// Routes that require the user_id cookie
	secured := api.Group("", handler.Identify(users))

	secured.GET("/me", h.Session.Me)

	secured.GET("/categories", h.Catalog.ListCategories)
	secured.POST("/categories", h.Catalog.AddCategory)
	secured.DELETE("/categories/:id", h.Catalog.DeleteCategory)

	secured.GET("/cart", h.Cart.GetCart)
	secured.DELETE("/cart", h.Cart.ClearCart)
	secured.POST("/cart/items", h.Cart.AddToCart)
	secured.DELETE("/cart/items/:id", h.Cart.RemoveFromCart)
	secured.POST("/cart/confirm", h.Order.ConfirmOrder)

	secured.GET("/orders", h.Order.GetOrders)
	secured.PATCH("/orders/:id/status", h.Order.UpdateOrderStatus)
	secured.POST("/orders/:id/repeat", h.Order.RepeatOrder)
}

// requestLogger logs one logrus entry per request.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
