package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

// CategoryHandler handles the /api/product/category CRUD resource.
type CategoryHandler struct {
	categories ports.CategoryService
}

func NewCategoryHandler(categories ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Title string `json:"title" validate:"required"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Create(c.Request().Context(), &domain.Category{Title: req.Title})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "", category)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categories.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categories.Update(c.Request().Context(), c.Param("id"), &domain.Category{Title: req.Title})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categories.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) List(c echo.Context) error {
	q := listQuery(c)
	categories, total, err := h.categories.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", paginate(categories, q.Page, q.Size, total))
}
