package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	testCases := []struct {
		name     string
		page     int
		pageSize int
		limit    int
		offset   int
	}{
		{"first page", 1, 50, 50, 0},
		{"second page", 2, 50, 50, 50},
		{"third page small size", 3, 10, 10, 20},
		{"zero page normalizes to first", 0, 50, 50, 0},
		{"negative page normalizes to first", -3, 50, 50, 0},
		{"zero page size falls back to default", 2, 0, DefaultPageSize, DefaultPageSize},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := pageWindow(tc.page, tc.pageSize)
			assert.Equal(t, tc.limit, limit)
			assert.Equal(t, tc.offset, offset)
		})
	}
}
