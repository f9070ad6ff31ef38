package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt64(t *testing.T) {
	v, ok, err := ParseInt64("")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, v)

	v, ok, err = ParseInt64("25")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 25, v)

	v, ok, err = ParseInt64("-3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, -3, v)

	_, ok, err = ParseInt64("abc")
	assert.True(t, ok)
	assert.Error(t, err)

	_, _, err = ParseInt64("1.5")
	assert.Error(t, err)
}

func TestPaging(t *testing.T) {
	tests := []struct {
		total, limit, offset int64
		pages, current       int64
	}{
		{total: 25, limit: 10, offset: 0, pages: 3, current: 1},
		{total: 25, limit: 10, offset: 10, pages: 3, current: 2},
		{total: 25, limit: 10, offset: 15, pages: 3, current: 2},
		{total: 20, limit: 10, offset: 20, pages: 2, current: 3},
		{total: 1, limit: 1, offset: 0, pages: 1, current: 1},
		{total: 0, limit: 10, offset: 0, pages: 0, current: 1},
		{total: 3, limit: math.MaxInt64, offset: 0, pages: 1, current: 1},
		{total: 5, limit: math.MaxInt64, offset: 4, pages: 1, current: 1},
		{total: math.MaxInt64, limit: 2, offset: 0, pages: math.MaxInt64/2 + 1, current: 1},
		{total: math.MaxInt64, limit: math.MaxInt64, offset: math.MaxInt64, pages: 1, current: 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.pages, TotalPages(tt.total, tt.limit), "pages %+v", tt)
		assert.Equal(t, tt.current, CurrentPage(tt.offset, tt.limit), "current %+v", tt)
	}
}
