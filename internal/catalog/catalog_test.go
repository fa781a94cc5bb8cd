package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samstech/techstore/internal/domain"
)

func seedProducts(n int) []domain.Product {
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:    int64(i + 1),
			Title: fmt.Sprintf("Product %d", i+1),
			Price: float64(i+1) * 10,
		}
	}
	return products
}

func TestPage_EightItemsTwoPages(t *testing.T) {
	c := New(seedProducts(8))
	require.Equal(t, 2, c.TotalPages())

	first, err := c.Page(1)
	require.NoError(t, err)
	second, err := c.Page(2)
	require.NoError(t, err)

	assert.Len(t, first, 6)
	assert.Len(t, second, 2)

	// Pages cover the catalog exactly once with no overlap
	seen := make(map[int64]bool)
	for _, p := range append(first, second...) {
		assert.False(t, seen[p.ID], "product %d appears twice", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 8)
	assert.Equal(t, int64(1), first[0].ID)
	assert.Equal(t, int64(7), second[0].ID)
}

func TestPage_OutOfRange(t *testing.T) {
	c := New(seedProducts(8))

	for _, pageNumber := range []int{0, -1, 3} {
		_, err := c.Page(pageNumber)
		assert.ErrorIs(t, err, ErrPageOutOfRange, "page %d", pageNumber)
	}
}

func TestPage_ExactMultiple(t *testing.T) {
	c := New(seedProducts(12))
	require.Equal(t, 2, c.TotalPages())

	second, err := c.Page(2)
	require.NoError(t, err)
	assert.Len(t, second, 6)
}

func TestWindow(t *testing.T) {
	c := New(seedProducts(8))

	window, err := c.Window(2)
	require.NoError(t, err)
	assert.Equal(t, domain.PageWindow{PageNumber: 2, PageSize: 6, TotalPages: 2}, window)

	_, err = c.Window(3)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestGet(t *testing.T) {
	c := New(seedProducts(3))

	p, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Product 2", p.Title)

	_, err = c.Get(99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestEmptyCatalog(t *testing.T) {
	c := New(nil)
	assert.Zero(t, c.TotalPages())
	assert.Zero(t, c.Len())

	_, err := c.Page(1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}
