package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/samstech/techstore/internal/cart"
	"github.com/samstech/techstore/internal/catalog"
	"github.com/samstech/techstore/internal/domain"
	"github.com/samstech/techstore/internal/notify"
)

type CartHandler struct {
	store    *cart.Store
	catalog  *catalog.Catalog
	notifier notify.Notifier
}

func NewCartHandler(store *cart.Store, cat *catalog.Catalog, notifier notify.Notifier) *CartHandler {
	return &CartHandler{store: store, catalog: cat, notifier: notifier}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type SetQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartDTO struct {
	Items     []domain.LineItem `json:"items"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
	Size      int               `json:"size"`
}

func (h *CartHandler) cartDTO(sessionID string) CartDTO {
	snapshot := h.store.Get(sessionID)
	return CartDTO{
		Items:     snapshot.Items,
		Total:     snapshot.Total(),
		ItemCount: snapshot.ItemCount(),
		Size:      snapshot.Size(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	respondJSON(w, http.StatusOK, h.cartDTO(sessionID))
}

// AddItem adds one unit of a catalog product. Each call adds one unit; the
// store accumulates quantity for repeated ids. The "added to cart"
// notification fires here, not in the store.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	product, err := h.catalog.Get(req.ProductID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	h.store.AddItem(sessionID, product)
	h.notifier.Notify("Added to Cart!", fmt.Sprintf("%s has been added to your cart.", product.Title), notify.KindSuccess)

	respondJSON(w, http.StatusCreated, h.cartDTO(sessionID))
}

// SetQuantity overwrites a line item's quantity; zero or below removes it.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.store.SetQuantity(sessionID, productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartDTO(sessionID))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	h.store.RemoveItem(sessionID, productID)
	respondJSON(w, http.StatusOK, h.cartDTO(sessionID))
}
