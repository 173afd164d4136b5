package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 10))
	assert.Equal(t, 1, Pages(1, 10))
	assert.Equal(t, 1, Pages(10, 10))
	assert.Equal(t, 2, Pages(11, 10))
	assert.Equal(t, 3, Pages(13, 5))
	assert.Equal(t, 0, Pages(5, 0))
}

func TestPageSlice(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	// Full pages carry exactly pageSize items; the last page the remainder.
	assert.Len(t, PageSlice(items, 5, 1), 5)
	assert.Len(t, PageSlice(items, 5, 2), 5)
	assert.Len(t, PageSlice(items, 5, 3), 3)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, PageSlice(items, 5, 1))
	assert.Equal(t, []int{10, 11, 12}, PageSlice(items, 5, 3))

	// Out-of-range pages clamp instead of panicking.
	assert.Equal(t, []int{0, 1, 2, 3, 4}, PageSlice(items, 5, 0))
	assert.Equal(t, []int{10, 11, 12}, PageSlice(items, 5, 9))

	assert.Nil(t, PageSlice([]int{}, 5, 1))
}

func TestPageBounds(t *testing.T) {
	assert.False(t, HasPrev(1))
	assert.True(t, HasPrev(2))
	assert.True(t, HasNext(13, 5, 2))
	assert.False(t, HasNext(13, 5, 3))
	assert.False(t, HasNext(0, 5, 1))
}
