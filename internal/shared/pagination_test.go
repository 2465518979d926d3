package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name    string
		limit   int
		offset  int
		total   int
		page    int
		pages   int
	}{
		{"first page", 10, 0, 95, 1, 10},
		{"mid page", 10, 30, 95, 4, 10},
		{"exact fit", 10, 90, 100, 10, 10},
		{"empty", 10, 0, 0, 1, 0},
		{"single record", 50, 0, 1, 1, 1},
		{"offset beyond total", 10, 200, 95, 21, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.limit, tc.offset, tc.total)
			require.Equal(t, tc.page, p.CurrentPage)
			require.Equal(t, tc.pages, p.TotalPages)
			require.Equal(t, tc.total, p.TotalRecords)
		})
	}
}

func TestNewPaginationClampsLimit(t *testing.T) {
	p := NewPagination(0, 0, 10)
	require.Equal(t, 1, p.Limit)
	require.Equal(t, 1, p.CurrentPage)
	require.Equal(t, 10, p.TotalPages)

	p = NewPagination(-5, -3, 10)
	require.Equal(t, 1, p.Limit)
	require.Equal(t, 0, p.Offset)
}
