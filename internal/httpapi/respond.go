package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/samstech/techstore/internal/catalog"
	"github.com/samstech/techstore/internal/checkout"
	"github.com/samstech/techstore/internal/prefs"
	"github.com/samstech/techstore/internal/view"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError maps core sentinel errors to HTTP statuses.
func handleDomainError(w http.ResponseWriter, err error) {
	var httpStatus int
	var code string

	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		httpStatus = http.StatusNotFound
		code = "product_not_found"
	case errors.Is(err, catalog.ErrPageOutOfRange):
		httpStatus = http.StatusBadRequest
		code = "page_out_of_range"
	case errors.Is(err, view.ErrEmptyCart):
		httpStatus = http.StatusConflict
		code = "empty_cart"
	case errors.Is(err, view.ErrCheckoutBusy), errors.Is(err, checkout.ErrSubmitInFlight):
		httpStatus = http.StatusConflict
		code = "submission_in_flight"
	case errors.Is(err, checkout.ErrNotOpen):
		httpStatus = http.StatusConflict
		code = "checkout_not_open"
	case errors.Is(err, checkout.ErrIncompleteForm):
		httpStatus = http.StatusUnprocessableEntity
		code = "incomplete_form"
	case errors.Is(err, checkout.ErrUnknownField):
		httpStatus = http.StatusBadRequest
		code = "unknown_field"
	case errors.Is(err, prefs.ErrUnknownTheme):
		httpStatus = http.StatusBadRequest
		code = "unknown_theme"
	default:
		httpStatus = http.StatusInternalServerError
		code = "internal_error"
	}

	respondError(w, httpStatus, code, err.Error())
}
