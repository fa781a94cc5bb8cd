package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/samstech/techstore/internal/view"
)

type ViewHandler struct {
	views *view.Controller
}

func NewViewHandler(views *view.Controller) *ViewHandler {
	return &ViewHandler{views: views}
}

func (h *ViewHandler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	respondJSON(w, http.StatusOK, h.views.State(sessionID))
}

func (h *ViewHandler) ShowHome(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	h.views.ShowHome(sessionID)
	respondJSON(w, http.StatusOK, h.views.State(sessionID))
}

func (h *ViewHandler) ShowProduct(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	if err := h.views.ShowProduct(sessionID, productID); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.views.State(sessionID))
}

func (h *ViewHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	pageStr := chi.URLParam(r, "page")
	pageNumber, err := strconv.Atoi(pageStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_page", "page must be an integer")
		return
	}

	if err := h.views.SetPage(sessionID, pageNumber); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.views.State(sessionID))
}

func (h *ViewHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	h.views.OpenCart(sessionID)
	respondJSON(w, http.StatusOK, h.views.State(sessionID))
}

func (h *ViewHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	h.views.CloseCart(sessionID)
	respondJSON(w, http.StatusOK, h.views.State(sessionID))
}
