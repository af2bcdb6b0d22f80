package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotAuthorized is returned when the request carries no known user.
	ErrNotAuthorized = errors.New("Not authorized")
	// ErrUsernameRequired is returned when connecting with a blank username.
	ErrUsernameRequired = errors.New("Username required")
	// ErrCategoryNameRequired is returned when a category name is blank.
	ErrCategoryNameRequired = errors.New("Category name required")
	// ErrProductNameRequired is returned when a product name is blank.
	ErrProductNameRequired = errors.New("Product name is required")
	// ErrInvalidPrice is returned when a price is missing or not positive.
	ErrInvalidPrice = errors.New("Valid price required")
	// ErrMissingProductID is returned when a product update has no id.
	ErrMissingProductID = errors.New("Missing product ID")
	// ErrInvalidProductCategory is returned when re-categorizing with a zero id.
	ErrInvalidProductCategory = errors.New("Invalid product/category ID")
	// ErrInvalidStatus is returned for an unknown order status.
	ErrInvalidStatus = errors.New("Invalid status")
	// ErrInvalidTransition is returned when an order cannot move to the requested status.
	ErrInvalidTransition = errors.New("Status change not allowed")
	// ErrNoActiveCart is returned when checking out without an active cart.
	ErrNoActiveCart = errors.New("No active cart found")
	// ErrCartEmpty is returned when checking out an empty cart.
	ErrCartEmpty = errors.New("Cart is empty")
	// ErrOrderNotRepeatable is returned when repeating an order that is not completed.
	ErrOrderNotRepeatable = errors.New("Only completed orders can be repeated")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCartItemNotFound is returned when a cart item is not in the active cart.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrNotAuthorized, http.StatusUnauthorized, "NOT_AUTHORIZED"},
	{ErrUsernameRequired, http.StatusBadRequest, "USERNAME_REQUIRED"},
	{ErrCategoryNameRequired, http.StatusBadRequest, "CATEGORY_NAME_REQUIRED"},
	{ErrProductNameRequired, http.StatusBadRequest, "PRODUCT_NAME_REQUIRED"},
	{ErrInvalidPrice, http.StatusBadRequest, "INVALID_PRICE"},
	{ErrMissingProductID, http.StatusBadRequest, "MISSING_PRODUCT_ID"},
	{ErrInvalidProductCategory, http.StatusBadRequest, "INVALID_PRODUCT_CATEGORY"},
	{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{ErrNoActiveCart, http.StatusBadRequest, "NO_ACTIVE_CART"},
	{ErrCartEmpty, http.StatusBadRequest, "CART_EMPTY"},
	{ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{ErrOrderNotRepeatable, http.StatusConflict, "ORDER_NOT_REPEATABLE"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
	{ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{ErrCartItemNotFound, http.StatusNotFound, "CART_ITEM_NOT_FOUND"},
	{ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
