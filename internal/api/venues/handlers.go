// internal/api/venues/handlers.go
package venues

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsideapp/courtside/internal/api/apiutil"
	"github.com/courtsideapp/courtside/internal/api/authz"
	"github.com/courtsideapp/courtside/internal/booking"
	appdb "github.com/courtsideapp/courtside/internal/db"
)

var (
	queries     *appdb.Queries
	service     *booking.Service
	queriesOnce sync.Once
)

const venuesQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *appdb.Queries, svc *booking.Service) {
	if q == nil || svc == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
		service = svc
	})
}

// venueResponse is a venue with its courts (joined with sport name) and
// operating hours, the shape the browse screen consumes. Amenities and
// coordinates are passed through as the JSON stored on the row.
type venueResponse struct {
	ID             int64                  `json:"id"`
	Name           string                 `json:"name"`
	Address        string                 `json:"address"`
	City           string                 `json:"city"`
	PhoneNumber    string                 `json:"phone_number,omitempty"`
	Description    string                 `json:"description,omitempty"`
	Amenities      json.RawMessage        `json:"amenities"`
	Coordinates    json.RawMessage        `json:"coordinates"`
	Courts         []appdb.CourtWithSport `json:"courts"`
	OperatingHours []appdb.OperatingHours `json:"operating_hours"`
}

// GET /api/v1/venues
func HandleVenuesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), venuesQueryTimeout)
	defer cancel()

	venuesList, err := q.ListVenues(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list venues")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch venues")
		return
	}

	response := []venueResponse{}
	for _, venue := range venuesList {
		courts, err := q.ListCourtsWithSportByVenue(ctx, venue.ID)
		if err != nil {
			logger.Error().Err(err).Int64("venue_id", venue.ID).Msg("Failed to list venue courts")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch venues")
			return
		}
		hours, err := q.ListOperatingHours(ctx, venue.ID)
		if err != nil {
			logger.Error().Err(err).Int64("venue_id", venue.ID).Msg("Failed to list operating hours")
			apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch venues")
			return
		}
		response = append(response, venueResponse{
			ID:             venue.ID,
			Name:           venue.Name,
			Address:        venue.Address,
			City:           venue.City,
			PhoneNumber:    venue.PhoneNumber.String,
			Description:    venue.Description.String,
			Amenities:      json.RawMessage(venue.Amenities),
			Coordinates:    json.RawMessage(venue.Coordinates),
			Courts:         courts,
			OperatingHours: hours,
		})
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("Failed to write venues response")
		return
	}
}

// GET /api/v1/sports
func HandleSportsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), venuesQueryTimeout)
	defer cancel()

	sports, err := q.ListSports(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list sports")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch sports")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, sports); err != nil {
		logger.Error().Err(err).Msg("Failed to write sports response")
		return
	}
}

// GET /api/v1/dashboard/reservations?court_id=...
// Owner-scoped view of a court's reservations: the caller must own the
// court's venue.
func HandleDashboardReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	svc := loadService()
	if q == nil || svc == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if _, ok := apiutil.RequireIdentity(w, r); !ok {
		return
	}

	courtID, err := apiutil.ParsePositiveInt64Field(r.URL.Query().Get("court_id"), "court_id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Court ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), venuesQueryTimeout)
	defer cancel()

	court, err := q.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Court not found")
			return
		}
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to fetch court")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	venue, err := q.GetVenue(ctx, court.VenueID)
	if err != nil {
		logger.Error().Err(err).Int64("venue_id", court.VenueID).Msg("Failed to fetch venue")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	if err := authz.RequireVenueOwner(r.Context(), venue.OwnerID); err != nil {
		logger.Warn().Int64("venue_id", venue.ID).Msg("Dashboard access denied")
		apiutil.WriteError(w, http.StatusForbidden, "Forbidden")
		return
	}

	list, err := svc.CourtReservations(ctx, courtID)
	if err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to fetch court reservations")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, list); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write reservations response")
		return
	}
}

func loadQueries() *appdb.Queries {
	return queries
}

func loadService() *booking.Service {
	return service
}
