package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Me returns the authenticated account behind the bearer token.
func Me(c echo.Context) error {
	principal, err := principalFromContext(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", principal)
}
