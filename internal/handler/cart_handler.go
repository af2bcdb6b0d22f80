package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopcart/internal/service"
)

// CartHandler handles active cart endpoints.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddToCartRequest represents an add-to-cart request.
type AddToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
}

// GetCart godoc
// @Summary Get the active cart
// @Tags cart
// @Produce json
// @Success 200 {object} model.CartView
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}

	cart, err := h.cartService.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

// AddToCart godoc
// @Summary Add one unit of a product to the active cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddToCartRequest true "Product"
// @Success 200 {object} model.CartView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddToCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}
	var req AddToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.cartService.AddToCart(ctx, user.ID, req.ProductID); err != nil {
		return respondError(err)
	}

	cart, err := h.cartService.GetCart(ctx, user.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveFromCart godoc
// @Summary Remove a line from the active cart
// @Tags cart
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.cartService.RemoveFromCart(c.Request().Context(), user.ID, id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "item removed"})
}

// ClearCart godoc
// @Summary Remove every line from the active cart
// @Tags cart
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}

	if err := h.cartService.ClearCart(c.Request().Context(), user.ID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "cart cleared"})
}
