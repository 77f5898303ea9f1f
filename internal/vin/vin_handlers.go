package vin

import (
	"encoding/json"
	"errors"
	"net/http"

	"vintrack/db"
	"vintrack/middleware"

	"github.com/gorilla/mux"
)

// VINHandlers struct holds the VIN service
type VINHandlers struct {
	Service *VINService
}

// NewVINHandlers creates new VIN HTTP handlers
func NewVINHandlers(service *VINService) *VINHandlers {
	return &VINHandlers{Service: service}
}

type addRequest struct {
	VIN string `json:"vin"`
}

// AddVIN handles registering a VIN for the authenticated user
func (h *VINHandlers) AddVIN(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	record, err := h.Service.Add(r.Context(), userID, req.VIN)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// ListVINs handles listing the user's tracked VINs
func (h *VINHandlers) ListVINs(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	records, err := h.Service.List(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// DeleteVIN handles removing a tracked VIN by id
func (h *VINHandlers) DeleteVIN(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetVehicleInfo decodes a VIN passed as a query parameter
func (h *VINHandlers) GetVehicleInfo(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	vinParam := r.URL.Query().Get("vin")
	specs, err := h.Service.VehicleInfo(r.Context(), vinParam)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(specs)
}
