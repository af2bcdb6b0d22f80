package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "shopcart/internal/errors"
	"shopcart/internal/model"
	"shopcart/internal/service"
)

const (
	// UserCookieName is the cookie carrying the connected user's id.
	UserCookieName = "user_id"
	userCookieTTL  = 7 * 24 * time.Hour
	userContextKey = "user"
)

// Identify resolves the user_id cookie into a user and stores it on the
// context. Requests without a known user are rejected with 401.
func Identify(users service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(UserCookieName)
			if err != nil || cookie.Value == "" {
				return respondError(apperrors.ErrNotAuthorized)
			}
			id, err := strconv.ParseUint(cookie.Value, 10, 64)
			if err != nil || id == 0 {
				return respondError(apperrors.ErrNotAuthorized)
			}

			user, err := users.GetUser(c.Request().Context(), uint(id))
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return respondError(apperrors.ErrNotAuthorized)
				}
				return respondError(err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// currentUser returns the user stored by Identify.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, apperrors.ErrNotAuthorized
	}
	return user, nil
}

func setUserCookie(c echo.Context, userID uint, secure bool) {
	// Drop any previous identity before issuing the new one.
	clearUserCookie(c, secure)
	c.SetCookie(&http.Cookie{
		Name:     UserCookieName,
		Value:    strconv.FormatUint(uint64(userID), 10),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(userCookieTTL.Seconds()),
	})
}

func clearUserCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     UserCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   -1,
	})
}

// respondError converts a domain error into an echo HTTP error carrying an
// ErrorResponse body.
func respondError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// bindAndValidate binds the request body and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return uint(id), nil
}

// MessageResponse is returned by operations without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}
