package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"vintrack/internal/auth"
	"vintrack/internal/listing"
	"vintrack/internal/settings"
	"vintrack/internal/vin"
	"vintrack/middleware"
)

// Router wires the HTTP handlers into the route table.
type Router struct {
	auth     *auth.AuthHandlers
	listings *listing.ListingHandlers
	vins     *vin.VINHandlers
	settings *settings.SettingsHandlers
	mw       *middleware.Middleware
}

func NewRouter(authHandlers *auth.AuthHandlers, listingHandlers *listing.ListingHandlers, vinHandlers *vin.VINHandlers, settingsHandlers *settings.SettingsHandlers, mw *middleware.Middleware) *Router {
	return &Router{
		auth:     authHandlers,
		listings: listingHandlers,
		vins:     vinHandlers,
		settings: settingsHandlers,
		mw:       mw,
	}
}

func (rt *Router) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/login", rt.auth.LoginHandler).Methods("POST")
	r.HandleFunc("/check-auth", rt.auth.CheckAuthHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/listings/search", rt.mw.AuthMiddleware(rt.listings.SearchListings)).Methods("GET")
	api.HandleFunc("/vins", rt.mw.AuthMiddleware(rt.vins.ListVINs)).Methods("GET")
	api.HandleFunc("/vins", rt.mw.AuthMiddleware(rt.vins.AddVIN)).Methods("POST")
	api.HandleFunc("/vins/{id}", rt.mw.AuthMiddleware(rt.vins.DeleteVIN)).Methods("DELETE")
	api.HandleFunc("/vehicle-info", rt.mw.AuthMiddleware(rt.vins.GetVehicleInfo)).Methods("GET")
	api.HandleFunc("/settings", rt.mw.AuthMiddleware(rt.settings.GetSettings)).Methods("GET")
	api.HandleFunc("/settings", rt.mw.AuthMiddleware(rt.settings.UpdateSettings)).Methods("PUT")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return r
}
