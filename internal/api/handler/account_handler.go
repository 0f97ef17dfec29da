package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/core/ports"
)

// AccountHandler handles the /api/users CRUD resource.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createUserRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Role        string `json:"role,omitempty" validate:"omitempty,oneof=USER ADMIN"`
}

type updateUserRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Password    string `json:"password,omitempty" validate:"omitempty,min=8"`
}

func (h *AccountHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accounts.Create(c.Request().Context(), ports.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "", account)
}

func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.accounts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", account)
}

func (h *AccountHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accounts.Update(c.Request().Context(), c.Param("id"), ports.AccountUpdateInput{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", account)
}

func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *AccountHandler) List(c echo.Context) error {
	q := listQuery(c)
	accounts, total, err := h.accounts.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", paginate(accounts, q.Page, q.Size, total))
}

func (h *AccountHandler) Search(c echo.Context) error {
	q := listQuery(c)
	accounts, total, err := h.accounts.SearchByName(c.Request().Context(), c.QueryParam("keyword"), q)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", paginate(accounts, q.Page, q.Size, total))
}
