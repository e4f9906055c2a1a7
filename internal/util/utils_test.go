package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page, size int
		offset     int
		limit      int
	}{
		{name: "defaults", page: 0, size: 0, offset: 0, limit: DefaultPageSize},
		{name: "first page", page: 1, size: 5, offset: 0, limit: 5},
		{name: "third page", page: 3, size: 5, offset: 10, limit: 5},
		{name: "negative page", page: -2, size: 5, offset: 0, limit: 5},
		{name: "oversized limit", page: 1, size: 500, offset: 0, limit: 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := Calculate(tc.page, tc.size)
			assert.Equal(t, tc.offset, offset)
			assert.Equal(t, tc.limit, limit)
		})
	}
}
