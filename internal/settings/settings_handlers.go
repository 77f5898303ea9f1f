package settings

import (
	"encoding/json"
	"net/http"

	"vintrack/middleware"
	"vintrack/models"
)

// SettingsHandlers struct holds the settings service
type SettingsHandlers struct {
	Service *SettingsService
}

// NewSettingsHandlers creates new settings HTTP handlers
func NewSettingsHandlers(service *SettingsService) *SettingsHandlers {
	return &SettingsHandlers{Service: service}
}

// GetSettings handles fetching the user's refresh settings
func (h *SettingsHandlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	settings, err := h.Service.GetUserSettings(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

type updateRequest struct {
	RefreshInterval models.RefreshInterval `json:"refresh_interval"`
}

// UpdateSettings handles changing the user's refresh cadence
func (h *SettingsHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	settings, err := h.Service.UpdateRefreshInterval(r.Context(), userID, req.RefreshInterval)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}
