package handler

import "github.com/labstack/echo/v4"

// apiResponse is the uniform success envelope: {statusCode, message, data}.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, apiResponse{StatusCode: status, Message: message, Data: data})
}

// paginationResponse wraps a page of items with its position in the full
// result set.
type paginationResponse struct {
	Items         any   `json:"items"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func paginate(items any, page, size int, total int64) paginationResponse {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return paginationResponse{
		Items:         items,
		PageNumber:    page,
		PageSize:      size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
