package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventura/marketplace-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// listResponse is the standard envelope for paginated collections.
type listResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func newListResponse[T any](p ports.Paged[T]) listResponse[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Data: items,
		Pagination: paginationResponse{
			Total:      p.Total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: p.TotalPages,
		},
	}
}

// pageFromQuery reads the ?page and ?limit parameters. Out-of-range values
// are normalized at the service boundary, not rejected.
func pageFromQuery(c echo.Context) ports.PageInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.PageInput{Page: page, Limit: limit}
}

// statusUpdateRequest is the shared body for every PATCH .../status endpoint.
// The raw value is normalized and validated by the owning service.
type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}
