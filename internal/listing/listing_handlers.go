package listing

import (
	"encoding/json"
	"errors"
	"net/http"

	"vintrack/internal/provider"
	"vintrack/middleware"
	"vintrack/models"
)

// ListingHandlers struct holds the listing service
type ListingHandlers struct {
	Service *ListingService
}

// NewListingHandlers creates new listing HTTP handlers
func NewListingHandlers(service *ListingService) *ListingHandlers {
	return &ListingHandlers{Service: service}
}

type searchResponse struct {
	Listings []models.Listing `json:"listings"`
	Report   RefreshReport    `json:"report"`
}

// SearchListings returns the aggregated listing view for every VIN the user
// tracks. Query params: refresh=true forces provider fetches for all VINs,
// sort=vin groups the view by VIN instead of the default newest-first order.
func (h *ListingHandlers) SearchListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	force := r.URL.Query().Get("refresh") == "true"
	order := SortByDateDesc
	if r.URL.Query().Get("sort") == "vin" {
		order = SortByVINThenDate
	}

	listings, report, err := h.Service.RefreshListings(r.Context(), userID, force, order)
	if err != nil {
		if errors.Is(err, provider.ErrNoAPIKey) {
			http.Error(w, "Provider API key is not configured", http.StatusInternalServerError)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(searchResponse{Listings: listings, Report: report})
}
