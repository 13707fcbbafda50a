// internal/api/courts/handlers.go
package courts

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsideapp/courtside/internal/api/apiutil"
	"github.com/courtsideapp/courtside/internal/booking"
)

var (
	service     *booking.Service
	serviceOnce sync.Once
)

const courtsQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
	})
}

// GET /api/v1/courts/{id}/reservations
func HandleCourtReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	courtID, err := apiutil.IDFromPath(r, "id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Court ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	list, err := svc.CourtReservations(ctx, courtID)
	if err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to fetch court reservations")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, list); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court reservations response")
		return
	}
}

// GET /api/v1/reservations?court_id=...
func HandleUpcomingReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("court_id"))
	if raw == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "Court ID is required")
		return
	}
	courtID, err := apiutil.ParsePositiveInt64Field(raw, "court_id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	reservations, err := svc.UpcomingCourtReservations(ctx, courtID)
	if err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to fetch upcoming reservations")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, reservations); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write reservations response")
		return
	}
}

func loadService() *booking.Service {
	return service
}
