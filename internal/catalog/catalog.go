package catalog

import (
	"errors"

	"github.com/samstech/techstore/internal/domain"
)

// PageSize is the fixed number of products per catalog page.
const PageSize = 6

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPageOutOfRange  = errors.New("page number out of range")
)

// Catalog is the static, read-only ordered product list, loaded once at
// startup. Pagination is derived from it; nothing here ever mutates.
type Catalog struct {
	products   []domain.Product
	byID       map[int64]domain.Product
	totalPages int
}

func New(products []domain.Product) *Catalog {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{
		products:   products,
		byID:       byID,
		totalPages: (len(products) + PageSize - 1) / PageSize,
	}
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) TotalPages() int {
	return c.totalPages
}

// Page returns the ordered sub-sequence for the given 1-based page number,
// clipped to catalog bounds. Out-of-range pages are a caller error.
func (c *Catalog) Page(pageNumber int) ([]domain.Product, error) {
	if pageNumber < 1 || pageNumber > c.totalPages {
		return nil, ErrPageOutOfRange
	}

	start := (pageNumber - 1) * PageSize
	end := start + PageSize
	if end > len(c.products) {
		end = len(c.products)
	}

	page := make([]domain.Product, end-start)
	copy(page, c.products[start:end])
	return page, nil
}

// Window returns the page descriptor for the given page number.
func (c *Catalog) Window(pageNumber int) (domain.PageWindow, error) {
	if pageNumber < 1 || pageNumber > c.totalPages {
		return domain.PageWindow{}, ErrPageOutOfRange
	}
	return domain.PageWindow{
		PageNumber: pageNumber,
		PageSize:   PageSize,
		TotalPages: c.totalPages,
	}, nil
}

// Get looks a product up by id.
func (c *Catalog) Get(id int64) (domain.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}
