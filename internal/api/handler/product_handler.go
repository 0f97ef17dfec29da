package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

// ProductHandler handles the /api/product CRUD resource.
type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	SKU           string  `json:"sku" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Quantity      int     `json:"quantity" validate:"gte=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0"`
	CategoryID    string  `json:"category_id,omitempty"`
}

func (r *productRequest) toDomain() *domain.Product {
	return &domain.Product{
		SKU:           r.SKU,
		Name:          r.Name,
		Quantity:      r.Quantity,
		PurchasePrice: r.PurchasePrice,
		SellingPrice:  r.SellingPrice,
		CategoryID:    r.CategoryID,
	}
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "", product)
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Update(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) List(c echo.Context) error {
	q := listQuery(c)
	products, total, err := h.products.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", paginate(products, q.Page, q.Size, total))
}
