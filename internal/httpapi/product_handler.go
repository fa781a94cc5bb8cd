package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/samstech/techstore/internal/catalog"
	"github.com/samstech/techstore/internal/domain"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

type ProductPageDTO struct {
	Window   domain.PageWindow `json:"window"`
	Products []domain.Product  `json:"products"`
}

// ListProducts returns one catalog page; ?page defaults to 1.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	pageNumber := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
			return
		}
		pageNumber = n
	}

	window, err := h.catalog.Window(pageNumber)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	products, err := h.catalog.Page(pageNumber)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ProductPageDTO{Window: window, Products: products})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.catalog.Get(productID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}
