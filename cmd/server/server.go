// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/courtsideapp/courtside/internal/api"
	"github.com/courtsideapp/courtside/internal/api/courts"
	"github.com/courtsideapp/courtside/internal/api/reservations"
	"github.com/courtsideapp/courtside/internal/api/venues"
	"github.com/courtsideapp/courtside/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithIdentity,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Reservation routes
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleReservationCreate)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", reservations.HandleReservationCancel)
	mux.HandleFunc("GET /api/v1/reservations/my", reservations.HandleMyReservations)
	mux.HandleFunc("GET /api/v1/reservations", courts.HandleUpcomingReservations)

	// Court routes
	mux.HandleFunc("GET /api/v1/courts/{id}/reservations", courts.HandleCourtReservations)

	// Venue browsing and owner dashboard
	mux.HandleFunc("GET /api/v1/venues", venues.HandleVenuesList)
	mux.HandleFunc("GET /api/v1/sports", venues.HandleSportsList)
	mux.HandleFunc("GET /api/v1/dashboard/reservations", venues.HandleDashboardReservations)
}
