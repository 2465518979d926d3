package shared

import "math"

// Pagination contains metadata for paginated listings. The frontend pages by
// limit/offset, so the current page is derived rather than supplied.
type Pagination struct {
	Limit        int `json:"limit"`
	Offset       int `json:"offset"`
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// NewPagination computes pagination metadata from a COUNT result.
func NewPagination(limit, offset, total int) Pagination {
	if limit <= 0 {
		limit = 1
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{
		Limit:        limit,
		Offset:       offset,
		CurrentPage:  offset/limit + 1,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		TotalRecords: total,
	}
}
