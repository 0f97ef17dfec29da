package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

// PartyHandler handles the /api/party CRUD resource.
type PartyHandler struct {
	parties ports.PartyService
}

func NewPartyHandler(parties ports.PartyService) *PartyHandler {
	return &PartyHandler{parties: parties}
}

type partyRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Address      string `json:"address" validate:"required"`
	BusinessName string `json:"business_name" validate:"required"`
	PartyType    string `json:"party_type" validate:"required,oneof=CUSTOMER VENDOR"`
}

func (r *partyRequest) toDomain() *domain.Party {
	return &domain.Party{
		Name:         r.Name,
		Email:        r.Email,
		PhoneNumber:  r.PhoneNumber,
		Address:      r.Address,
		BusinessName: r.BusinessName,
		PartyType:    r.PartyType,
	}
}

func (h *PartyHandler) Create(c echo.Context) error {
	var req partyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	party, err := h.parties.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "", party)
}

func (h *PartyHandler) Get(c echo.Context) error {
	party, err := h.parties.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", party)
}

func (h *PartyHandler) Update(c echo.Context) error {
	var req partyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	party, err := h.parties.Update(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", party)
}

func (h *PartyHandler) Delete(c echo.Context) error {
	if err := h.parties.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Party deleted successfully", nil)
}

func (h *PartyHandler) List(c echo.Context) error {
	q := listQuery(c)
	parties, total, err := h.parties.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", paginate(parties, q.Page, q.Size, total))
}

func (h *PartyHandler) Search(c echo.Context) error {
	q := listQuery(c)
	parties, total, err := h.parties.SearchByName(c.Request().Context(), c.QueryParam("keyword"), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", paginate(parties, q.Page, q.Size, total))
}
