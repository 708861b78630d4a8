package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/metrics"
	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

const entityProduct = "product"

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	service ports.ProductService
	log     zerolog.Logger
}

func NewProductHandler(service ports.ProductService, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{service: service, log: log}
}

// Create adds a product to an active category.
//
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      200   {object}  response.Envelope{data=domain.Product}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Failure      409   {object}  response.ErrorEnvelope
// @Router       /admin/productAdd [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, h.log, err)
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
		Stock:       *req.Stock,
	})
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	metrics.CatalogMutationsTotal.WithLabelValues(entityProduct, "create").Inc()
	return response.OK(c, "Product added successfully.", product)
}

// List pages through active products, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Page number"  default(1)
// @Param        limit       query     int     false  "Page size"    default(10)
// @Param        categoryId  query     string  false  "Only products of this category"
// @Success      200         {object}  productListResponse{data=[]domain.Product}
// @Failure      400         {object}  response.ErrorEnvelope
// @Failure      404         {object}  response.ErrorEnvelope
// @Router       /admin/getAllProduct [get]
func (h *ProductHandler) List(c echo.Context) error {
	return h.list(c, c.QueryParam("categoryId"))
}

// ListByCategory pages through the active products of one category.
//
// @Summary      List products of a category
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Category ID"
// @Param        page   query     int     false  "Page number"  default(1)
// @Param        limit  query     int     false  "Page size"    default(10)
// @Success      200    {object}  productListResponse{data=[]domain.Product}
// @Failure      400    {object}  response.ErrorEnvelope
// @Failure      404    {object}  response.ErrorEnvelope
// @Router       /admin/getProduct/{id} [get]
// @Router       /user/getProduct/{id} [get]
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	return h.list(c, c.Param("id"))
}

func (h *ProductHandler) list(c echo.Context, categoryID string) error {
	page, err := pageParams(c)
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	list, err := h.service.List(c.Request().Context(), ports.ListProductsInput{Page: page, CategoryID: categoryID})
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return c.JSON(http.StatusOK, productListResponse{
		Envelope:      response.Envelope{Success: true, Message: "Products retrieved successfully.", Data: list.Products},
		CurrentPage:   list.Page.Page,
		TotalPages:    list.TotalPages,
		HasNextPage:   list.HasNextPage,
		TotalProducts: list.Total,
	})
}

// Get returns one active product.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true   "Product ID"
// @Param        categoryId  query     string  false  "Require the product to be in this category"
// @Success      200         {object}  response.Envelope{data=domain.Product}
// @Failure      400         {object}  response.ErrorEnvelope
// @Failure      404         {object}  response.ErrorEnvelope
// @Router       /admin/getProductByID/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"), c.QueryParam("categoryId"))
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return response.OK(c, "Product retrieved successfully.", product)
}

// Update edits the fields present in the body. Zero price and zero stock are
// applied.
//
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope{data=domain.Product}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Failure      409   {object}  response.ErrorEnvelope
// @Router       /admin/productUpdate/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
	})
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	metrics.CatalogMutationsTotal.WithLabelValues(entityProduct, "update").Inc()
	return response.OK(c, "Product updated successfully.", product)
}

// Delete soft-deletes a product.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Envelope{data=domain.Product}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /admin/deleteProduct/{id} [put]
func (h *ProductHandler) Delete(c echo.Context) error {
	product, err := h.service.SoftDelete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	metrics.CatalogMutationsTotal.WithLabelValues(entityProduct, "delete").Inc()
	return response.OK(c, "Product deleted successfully.", product)
}
