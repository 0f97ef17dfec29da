package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/core/ports"
)

// listQuery reads page/size/sortBy/sortDir query parameters, falling back to
// the defaults for anything absent or unparseable.
func listQuery(c echo.Context) ports.ListQuery {
	q := ports.ListQuery{
		Page:    ports.DefaultPage,
		Size:    ports.DefaultSize,
		SortBy:  c.QueryParam("sortBy"),
		SortDir: c.QueryParam("sortDir"),
	}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("size")); err == nil {
		q.Size = v
	}
	return q.Normalized()
}
