package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"shopcart/internal/service"
)

// CatalogHandler handles category and product endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// CategoryRequest represents a category creation request.
type CategoryRequest struct {
	Name string `json:"name" validate:"max=255"`
}

// ProductRequest represents a product creation or update request.
// Price accepts a JSON number or a numeric string.
type ProductRequest struct {
	Name       string          `json:"name" validate:"max=255"`
	Price      decimal.Decimal `json:"price"`
	CategoryID uint            `json:"category_id"`
}

// ProductCategoryRequest represents a product re-categorization request.
type ProductCategoryRequest struct {
	CategoryID uint `json:"category_id"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{Name: r.Name, Price: r.Price, CategoryID: r.CategoryID}
}

// ListCategories godoc
// @Summary List the connected user's categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}

	categories, err := h.catalogService.ListCategories(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// AddCategory godoc
// @Summary Create a category for the connected user
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CatalogHandler) AddCategory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}

	var req CategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.catalogService.AddCategory(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory godoc
// @Summary Delete one of the connected user's categories
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return respondError(err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteCategory(c.Request().Context(), user.ID, id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "category deleted"})
}

// GetProducts godoc
// @Summary List products with their category name
// @Tags products
// @Produce json
// @Success 200 {array} model.ProductView
// @Router /products [get]
func (h *CatalogHandler) GetProducts(c echo.Context) error {
	products, err := h.catalogService.GetProducts(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, products)
}

// AddProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products [post]
func (h *CatalogHandler) AddProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.AddProduct(c.Request().Context(), req.input())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update name, price and category of a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalogService.UpdateProduct(c.Request().Context(), id, req.input())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProductCategory godoc
// @Summary Move a product to another category
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body ProductCategoryRequest true "Category"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/category [patch]
func (h *CatalogHandler) UpdateProductCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req ProductCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.catalogService.UpdateProductCategory(c.Request().Context(), id, req.CategoryID); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "product category updated"})
}
