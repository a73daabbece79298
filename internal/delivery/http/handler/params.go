package handler

import (
	"errors"
	"net/http"

	"clinic-booking/pkg/query"
	"clinic-booking/pkg/response"
)

// writeParamError maps a query-parameter validation failure to a 400 with
// a field-level error body, falling back to a generic message for
// anything unexpected.
func writeParamError(w http.ResponseWriter, err error) {
	var invalid *query.InvalidParamError
	if errors.As(err, &invalid) {
		response.ValidationError(w, map[string]string{invalid.Param: invalid.Message})
		return
	}
	response.Error(w, http.StatusBadRequest, "Invalid query parameters", nil)
}

// buildMeta turns pagination plus a total row count into the response
// meta block.
func buildMeta(p query.Pagination, total int64) *response.Meta {
	return &response.Meta{
		Page:       p.Page,
		Limit:      p.PageSize,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
}
