package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopcart/internal/service"
)

// SessionHandler handles connecting users and the shop dashboard.
type SessionHandler struct {
	userService      service.UserService
	dashboardService service.DashboardService
	secureCookie     bool
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(userService service.UserService, dashboardService service.DashboardService, secureCookie bool) *SessionHandler {
	return &SessionHandler{
		userService:      userService,
		dashboardService: dashboardService,
		secureCookie:     secureCookie,
	}
}

// ConnectRequest represents a connect request.
type ConnectRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
}

// Connect godoc
// @Summary Connect as a user, creating it on first use
// @Tags session
// @Accept json
// @Produce json
// @Param request body ConnectRequest true "Username"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /session [post]
func (h *SessionHandler) Connect(c echo.Context) error {
	var req ConnectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.ConnectUser(c.Request().Context(), req.Username)
	if err != nil {
		return respondError(err)
	}

	setUserCookie(c, user.ID, h.secureCookie)
	return c.JSON(http.StatusOK, user)
}

// Disconnect godoc
// @Summary Forget the connected user
// @Tags session
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /session [delete]
func (h *SessionHandler) Disconnect(c echo.Context) error {
	clearUserCookie(c, h.secureCookie)
	return c.JSON(http.StatusOK, MessageResponse{Message: "disconnected"})
}

// Me godoc
// @Summary Get username, categories, products and cart of the connected user
// @Tags session
// @Produce json
// @Success 200 {object} model.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me [get]
func (h *SessionHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}

	dashboard, err := h.dashboardService.GetUserFullData(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
