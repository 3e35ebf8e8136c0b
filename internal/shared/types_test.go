package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{"defaults applied", Pagination{}, 1, 10},
		{"negative page", Pagination{Page: -3, Limit: 20}, 1, 20},
		{"limit capped", Pagination{Page: 2, Limit: 500}, 2, 100},
		{"valid passthrough", Pagination{Page: 3, Limit: 12}, 3, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	p := Pagination{Page: 3, Limit: 12}
	assert.Equal(t, 24, p.Offset())
}

func TestPaginationTotalPages(t *testing.T) {
	// 25 items at limit 12 -> 3 pages (12, 12, 1)
	p := Pagination{Page: 1, Limit: 12}
	assert.Equal(t, 3, p.TotalPages(25))

	assert.Equal(t, 0, Pagination{Limit: 10}.TotalPages(0))
	assert.Equal(t, 1, Pagination{Limit: 10}.TotalPages(10))
	assert.Equal(t, 2, Pagination{Limit: 10}.TotalPages(11))
}
