// internal/booking/service.go
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	appdb "github.com/courtsideapp/courtside/internal/db"
)

// CacheInvalidator drops any cached view of a user's reservation list after
// a successful mutation. Implementations must tolerate being called on every
// create/cancel; a nil invalidator disables the hook.
type CacheInvalidator interface {
	InvalidateUserReservations(ctx context.Context, userID string)
}

// Service owns the validated reservation mutations and the read queries
// around them. All time arithmetic is done in UTC before it reaches storage.
type Service struct {
	store *appdb.DB
	cache CacheInvalidator
}

func NewService(store *appdb.DB, cache CacheInvalidator) *Service {
	return &Service{store: store, cache: cache}
}

// Create validates and inserts a reservation for userID on courtID covering
// the given hour labels on date. The conflict check and the insert run in a
// single transaction; with the immediate-write DSN this serializes concurrent
// creates for the same slot so at most one succeeds.
func (s *Service) Create(ctx context.Context, userID string, courtID int64, date time.Time, times []string) (appdb.Reservation, error) {
	if userID == "" {
		return appdb.Reservation{}, ErrNotAuthenticated
	}

	startTime, endTime, err := SlotRange(date, times)
	if err != nil {
		return appdb.Reservation{}, err
	}
	startTime = startTime.UTC()
	endTime = endTime.UTC()

	var created appdb.Reservation
	err = s.store.RunInTx(ctx, func(tx *appdb.DB) error {
		court, err := tx.Queries.GetCourt(ctx, courtID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCourtNotFound
			}
			return fmt.Errorf("fetch court: %w", err)
		}

		conflicts, err := tx.Queries.CountConflictingReservations(ctx, appdb.CountConflictingReservationsParams{
			CourtID:   courtID,
			StartTime: startTime,
			EndTime:   endTime,
		})
		if err != nil {
			return fmt.Errorf("conflict check: %w", err)
		}
		if conflicts > 0 {
			return ErrSlotTaken
		}

		created, err = tx.Queries.CreateReservation(ctx, appdb.CreateReservationParams{
			UserID:        userID,
			CourtID:       courtID,
			StartTime:     startTime,
			EndTime:       endTime,
			TotalPrice:    float64(len(times)) * court.BasePrice,
			Status:        appdb.ReservationStatusConfirmed,
			PaymentStatus: appdb.PaymentStatusUnpaid,
		})
		if err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return appdb.Reservation{}, err
	}

	s.invalidate(ctx, userID)

	log.Ctx(ctx).Info().
		Int64("reservation_id", created.ID).
		Int64("court_id", courtID).
		Time("start_time", created.StartTime).
		Msg("Reservation created")
	return created, nil
}

// Cancel transitions a reservation owned by userID from confirmed to
// cancelled. Only status changes; payment status is left untouched.
func (s *Service) Cancel(ctx context.Context, userID string, reservationID int64) (appdb.Reservation, error) {
	if userID == "" {
		return appdb.Reservation{}, ErrNotAuthenticated
	}

	var updated appdb.Reservation
	err := s.store.RunInTx(ctx, func(tx *appdb.DB) error {
		reservation, err := tx.Queries.GetReservationForUser(ctx, appdb.GetReservationForUserParams{
			ID:     reservationID,
			UserID: userID,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("fetch reservation: %w", err)
		}

		if reservation.Status == appdb.ReservationStatusCancelled {
			return ErrAlreadyCancelled
		}
		if !reservation.StartTime.After(time.Now()) {
			return ErrPastReservation
		}

		updated, err = tx.Queries.UpdateReservationStatus(ctx, appdb.UpdateReservationStatusParams{
			ID:     reservationID,
			Status: appdb.ReservationStatusCancelled,
		})
		if err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return appdb.Reservation{}, err
	}

	s.invalidate(ctx, userID)

	log.Ctx(ctx).Info().
		Int64("reservation_id", updated.ID).
		Msg("Reservation cancelled")
	return updated, nil
}

// ReservationList partitions reservations into upcoming and past by start
// time relative to now, each ascending by start. Slices are never nil.
type ReservationList struct {
	Upcoming []appdb.ReservationWithCourt `json:"upcoming"`
	Past     []appdb.ReservationWithCourt `json:"past"`
}

// UserReservations returns all of a user's reservations joined with their
// court, partitioned into upcoming (start > now) and past (start <= now).
func (s *Service) UserReservations(ctx context.Context, userID string) (ReservationList, error) {
	reservations, err := s.store.Queries.ListReservationsByUser(ctx, userID)
	if err != nil {
		return ReservationList{}, fmt.Errorf("list user reservations: %w", err)
	}

	now := time.Now()
	list := ReservationList{
		Upcoming: []appdb.ReservationWithCourt{},
		Past:     []appdb.ReservationWithCourt{},
	}
	for _, reservation := range reservations {
		if reservation.StartTime.After(now) {
			list.Upcoming = append(list.Upcoming, reservation)
		} else {
			list.Past = append(list.Past, reservation)
		}
	}
	return list, nil
}

// CourtReservationList mirrors ReservationList for a court-scoped view.
type CourtReservationList struct {
	Upcoming []appdb.Reservation `json:"upcoming"`
	Past     []appdb.Reservation `json:"past"`
}

// CourtReservations returns a court's reservations partitioned into upcoming
// and past by start time relative to now.
func (s *Service) CourtReservations(ctx context.Context, courtID int64) (CourtReservationList, error) {
	now := time.Now().UTC()

	upcoming, err := s.store.Queries.ListCourtReservationsStartingFrom(ctx, appdb.CourtReservationsParams{
		CourtID: courtID,
		At:      now,
	})
	if err != nil {
		return CourtReservationList{}, fmt.Errorf("list upcoming court reservations: %w", err)
	}

	past, err := s.store.Queries.ListCourtReservationsStartingBefore(ctx, appdb.CourtReservationsParams{
		CourtID: courtID,
		At:      now,
	})
	if err != nil {
		return CourtReservationList{}, fmt.Errorf("list past court reservations: %w", err)
	}

	return CourtReservationList{Upcoming: upcoming, Past: past}, nil
}

// UpcomingCourtReservations returns a court's reservations starting today or
// later, ascending by start time.
func (s *Service) UpcomingCourtReservations(ctx context.Context, courtID int64) ([]appdb.Reservation, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	reservations, err := s.store.Queries.ListCourtReservationsStartingFrom(ctx, appdb.CourtReservationsParams{
		CourtID: courtID,
		At:      today.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("list upcoming court reservations: %w", err)
	}
	return reservations, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	s.cache.InvalidateUserReservations(ctx, userID)
}
