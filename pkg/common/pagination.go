package common

import (
	"net/http"
	"strconv"

	"obras-backend/application/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ExtractListParams reads page, page_size and search from the query string,
// clamping to safe defaults.
func ExtractListParams(r *http.Request) ports.ListParams {
	params := ports.ListParams{
		Page:     defaultPage,
		PageSize: defaultPageSize,
		Search:   r.URL.Query().Get("search"),
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if pageSize := r.URL.Query().Get("page_size"); pageSize != "" {
		if ps, err := strconv.Atoi(pageSize); err == nil && ps > 0 {
			if ps > maxPageSize {
				ps = maxPageSize
			}
			params.PageSize = ps
		}
	}

	return params
}

// PaginationMeta builds the response pagination block from a list result.
func PaginationMeta(params ports.ListParams, result *ports.ListResult) *MetaInfo {
	return &MetaInfo{
		Pagination: &PaginationInfo{
			Page:       params.Page,
			PageSize:   params.PageSize,
			TotalItems: result.TotalItems,
			TotalPages: result.TotalPages,
		},
	}
}
