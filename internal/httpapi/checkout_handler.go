package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/samstech/techstore/internal/checkout"
	"github.com/samstech/techstore/internal/domain"
	"github.com/samstech/techstore/internal/view"
)

type CheckoutHandler struct {
	manager *checkout.Manager
	views   *view.Controller
}

func NewCheckoutHandler(manager *checkout.Manager, views *view.Controller) *CheckoutHandler {
	return &CheckoutHandler{manager: manager, views: views}
}

type UpdateFieldRequestDTO struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type CheckoutStateDTO struct {
	Status domain.CheckoutStatus `json:"status"`
	Form   domain.ShippingForm   `json:"form"`
}

// Open opens the checkout dialog and resets the shipping form. The non-empty
// cart precondition is enforced at the view boundary.
func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	if err := h.views.OpenCheckout(sessionID); err != nil {
		handleDomainError(w, err)
		return
	}
	if err := h.manager.Open(sessionID); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CheckoutStateDTO{Status: h.manager.Status(sessionID)})
}

func (h *CheckoutHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	var req UpdateFieldRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.manager.UpdateField(sessionID, req.Field, req.Value); err != nil {
		handleDomainError(w, err)
		return
	}

	form, err := h.manager.Form(sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CheckoutStateDTO{Status: h.manager.Status(sessionID), Form: form})
}

// Submit runs the checkout state machine to completion and returns the order
// confirmation on success.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	order, err := h.manager.Submit(r.Context(), sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// Close cancels the checkout, discarding the form. Rejected while a
// submission is in flight.
func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	if err := h.views.CloseCheckout(sessionID); err != nil {
		handleDomainError(w, err)
		return
	}
	if err := h.manager.Close(sessionID); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
