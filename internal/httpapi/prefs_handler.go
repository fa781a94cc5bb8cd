package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/samstech/techstore/internal/prefs"
)

type PrefsHandler struct {
	service *prefs.Service
}

func NewPrefsHandler(service *prefs.Service) *PrefsHandler {
	return &PrefsHandler{service: service}
}

type ThemeDTO struct {
	Theme string `json:"theme"`
}

func (h *PrefsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	respondJSON(w, http.StatusOK, ThemeDTO{Theme: h.service.Theme(r.Context(), sessionID)})
}

func (h *PrefsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())

	var req ThemeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.service.SetTheme(r.Context(), sessionID, req.Theme); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ThemeDTO{Theme: req.Theme})
}
