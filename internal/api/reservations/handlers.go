// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtsideapp/courtside/internal/api/apiutil"
	"github.com/courtsideapp/courtside/internal/booking"
	"github.com/courtsideapp/courtside/internal/cache"
)

var (
	service     *booking.Service
	listCache   *cache.ReservationCache
	serviceOnce sync.Once
)

const reservationQueryTimeout = 5 * time.Second

// InitHandlers must be called during server startup before handling requests.
// listCache may be nil; reads then always hit the database.
func InitHandlers(svc *booking.Service, c *cache.ReservationCache) {
	if svc == nil {
		return
	}
	serviceOnce.Do(func() {
		service = svc
		listCache = c
	})
}

type createReservationRequest struct {
	CourtID int64    `json:"court_id"`
	Date    string   `json:"date"`
	Times   []string `json:"times"`
}

// POST /api/v1/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	identity, ok := apiutil.RequireIdentity(w, r)
	if !ok {
		return
	}

	var req createReservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.CourtID <= 0 {
		apiutil.WriteError(w, http.StatusBadRequest, apiutil.FieldError{Field: "court_id", Reason: "must be a positive integer"}.Error())
		return
	}
	date, err := apiutil.ParseDateField(req.Date, "date")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	created, err := svc.Create(ctx, identity.UserID, req.CourtID, date, req.Times)
	if err != nil {
		writeBookingError(w, r, err, "Failed to create reservation")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("reservation_id", created.ID).Msg("Failed to write reservation response")
		return
	}
}

// POST /api/v1/reservations/{id}/cancel
func HandleReservationCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	identity, ok := apiutil.RequireIdentity(w, r)
	if !ok {
		return
	}

	reservationID, err := apiutil.IDFromPath(r, "id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	updated, err := svc.Cancel(ctx, identity.UserID, reservationID)
	if err != nil {
		writeBookingError(w, r, err, "Failed to cancel reservation")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, updated); err != nil {
		logger.Error().Err(err).Int64("reservation_id", updated.ID).Msg("Failed to write reservation response")
		return
	}
}

// GET /api/v1/reservations/my
func HandleMyReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := loadService()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	identity, ok := apiutil.RequireIdentity(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationQueryTimeout)
	defer cancel()

	if payload, hit := listCache.GetUserReservations(ctx, identity.UserID); hit {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(payload); err != nil {
			logger.Error().Err(err).Msg("Failed to write cached reservation list")
		}
		return
	}

	list, err := svc.UserReservations(ctx, identity.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list user reservations")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}

	payload, err := json.Marshal(list)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode reservation list")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to fetch reservations")
		return
	}
	listCache.SetUserReservations(ctx, identity.UserID, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservation list")
	}
}

// writeBookingError maps booking sentinel errors onto the HTTP surface; any
// unrecognized error is logged and reported as the generic fallback.
func writeBookingError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var slotErr booking.SlotLabelError
	switch {
	case errors.Is(err, booking.ErrNotAuthenticated):
		apiutil.WriteError(w, http.StatusUnauthorized, "User is not authenticated")
	case errors.Is(err, booking.ErrCourtNotFound):
		apiutil.WriteError(w, http.StatusNotFound, "Court not found")
	case errors.Is(err, booking.ErrSlotTaken):
		apiutil.WriteError(w, http.StatusConflict, "Time slot is already reserved")
	case errors.Is(err, booking.ErrReservationNotFound):
		apiutil.WriteError(w, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, booking.ErrAlreadyCancelled):
		apiutil.WriteError(w, http.StatusConflict, "Reservation is already cancelled")
	case errors.Is(err, booking.ErrPastReservation):
		apiutil.WriteError(w, http.StatusConflict, "Cannot cancel past reservations")
	case errors.As(err, &slotErr):
		apiutil.WriteError(w, http.StatusBadRequest, slotErr.Error())
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg(fallback)
		apiutil.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

func loadService() *booking.Service {
	return service
}
