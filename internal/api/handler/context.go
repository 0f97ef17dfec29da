package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/api/middleware"
	"github.com/khata/ledger-api/internal/core/domain"
)

// principalFromContext extracts the account attached by the Authenticate
// middleware. Handlers behind RequireAuth can rely on it being present; the
// 401 here only fires when a handler is misrouted outside the guard.
func principalFromContext(c echo.Context) (*domain.Account, error) {
	principal, ok := c.Get(middleware.ContextPrincipal).(*domain.Account)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
