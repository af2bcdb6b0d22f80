package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopcart/internal/service"
)

// OrderHandler handles checkout and order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// StatusRequest represents an order status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse represents the state of an order after a change.
type OrderResponse struct {
	CartID  uint   `json:"cart_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ConfirmOrder godoc
// @Summary Check out the active cart
// @Tags orders
// @Produce json
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart/confirm [post]
func (h *OrderHandler) ConfirmOrder(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}

	cart, err := h.orderService.ConfirmOrder(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, OrderResponse{
		CartID:  cart.ID,
		Status:  string(cart.Status),
		Message: "order confirmed",
	})
}

// GetOrders godoc
// @Summary List the connected user's orders, newest first
// @Tags orders
// @Produce json
// @Param status query string false "Only orders in this status"
// @Success 200 {array} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) GetOrders(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}

	orders, err := h.orderService.GetOrders(c.Request().Context(), user.ID, c.QueryParam("status"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus godoc
// @Summary Move an order to another status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order (cart) ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	cart, err := h.orderService.UpdateOrderStatus(c.Request().Context(), user.ID, id, req.Status)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, OrderResponse{
		CartID:  cart.ID,
		Status:  string(cart.Status),
		Message: "order status updated",
	})
}

// RepeatOrder godoc
// @Summary Add a completed order's items back to the active cart
// @Tags orders
// @Produce json
// @Param id path int true "Order (cart) ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /orders/{id}/repeat [post]
func (h *OrderHandler) RepeatOrder(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.orderService.RepeatOrder(c.Request().Context(), user.ID, id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "all items added back to your cart"})
}
