package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/metrics"
	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

const entityCategory = "category"

// CategoryHandler handles HTTP requests for the category tree.
type CategoryHandler struct {
	service ports.CategoryService
	log     zerolog.Logger
}

func NewCategoryHandler(service ports.CategoryService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, log: log}
}

// Create adds a category, optionally under a parent.
//
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      200   {object}  response.Envelope{data=domain.Category}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Router       /admin/productCategory [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, h.log, err)
	}

	category, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentCategory,
	})
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	metrics.CatalogMutationsTotal.WithLabelValues(entityCategory, "create").Inc()
	return response.OK(c, "Category added successfully", category)
}

// List pages through active categories sorted by name.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"  default(1)
// @Param        limit  query     int  false  "Page size"    default(10)
// @Success      200    {object}  categoryListResponse{data=[]domain.Category}
// @Failure      400    {object}  response.ErrorEnvelope
// @Failure      401    {object}  response.ErrorEnvelope
// @Router       /admin/getProductCategory [get]
// @Router       /user/getProductCategory [get]
func (h *CategoryHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	list, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return c.JSON(http.StatusOK, categoryListResponse{
		Envelope:        response.Envelope{Success: true, Message: "Categories retrieved successfully.", Data: list.Categories},
		CurrentPage:     list.Page.Page,
		TotalCategories: list.Total,
		HasNext:         list.HasNext,
	})
}

// Update edits the fields present in the body. A null parentCategory moves
// the category to the root.
//
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Category ID"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope{data=domain.Category}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Router       /admin/updateProductCategory/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentCategory,
	})
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	metrics.CatalogMutationsTotal.WithLabelValues(entityCategory, "update").Inc()
	return response.OK(c, "Category updated successfully.", category)
}

// Delete soft-deletes a category without active children.
//
// @Summary      Delete category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      401  {object}  response.ErrorEnvelope
// @Router       /admin/deleteProductCategory/{id} [put]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Fail(c, h.log, err)
	}

	metrics.CatalogMutationsTotal.WithLabelValues(entityCategory, "delete").Inc()
	return response.OK(c, "Category deleted successfully.", nil)
}
