package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams_Clamps(t *testing.T) {
	p := GetPaginationParams(0, -3)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Limit)

	p = GetPaginationParams(2, 500)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, maxPageSize, p.Limit)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, GetPaginationParams(1, 20).CalculateOffset())
	assert.Equal(t, 40, GetPaginationParams(3, 20).CalculateOffset())
}

func TestCalculateMeta(t *testing.T) {
	meta := CalculateMeta(45, 2, 20)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, int64(45), meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)

	// Exact multiple does not add a trailing page
	assert.Equal(t, 2, CalculateMeta(40, 1, 20).TotalPages)

	// Unbounded read collapses to a single page
	meta = CalculateMeta(7, 1, 0)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 7, meta.Limit)
}
