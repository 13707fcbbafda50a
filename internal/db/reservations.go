// internal/db/reservations.go
package db

import (
	"context"
	"time"
)

const reservationColumns = `id, user_id, court_id, start_time, end_time, total_price, status, payment_status, created_at, notes, reminder_sent`

func scanReservation(row interface{ Scan(...interface{}) error }) (Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID, &r.UserID, &r.CourtID, &r.StartTime, &r.EndTime,
		&r.TotalPrice, &r.Status, &r.PaymentStatus, &r.CreatedAt,
		&r.Notes, &r.ReminderSent,
	)
	return r, err
}

type CreateReservationParams struct {
	UserID        string
	CourtID       int64
	StartTime     time.Time
	EndTime       time.Time
	TotalPrice    float64
	Status        string
	PaymentStatus string
}

const createReservation = `
INSERT INTO reservations (user_id, court_id, start_time, end_time, total_price, status, payment_status)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + reservationColumns

func (q *Queries) CreateReservation(ctx context.Context, arg CreateReservationParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, createReservation,
		arg.UserID, arg.CourtID, arg.StartTime, arg.EndTime,
		arg.TotalPrice, arg.Status, arg.PaymentStatus,
	)
	return scanReservation(row)
}

// Half-open interval intersection: an existing confirmed reservation
// conflicts iff existing.start < candidate.end AND candidate.start <
// existing.end. End-exclusive, so back-to-back reservations never conflict.
const countConflictingReservations = `
SELECT COUNT(*)
FROM reservations
WHERE court_id = ?
  AND status = 'confirmed'
  AND start_time < ?
  AND ? < end_time
`

type CountConflictingReservationsParams struct {
	CourtID   int64
	StartTime time.Time
	EndTime   time.Time
}

func (q *Queries) CountConflictingReservations(ctx context.Context, arg CountConflictingReservationsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countConflictingReservations,
		arg.CourtID, arg.EndTime, arg.StartTime,
	).Scan(&count)
	return count, err
}

const getReservationForUser = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE id = ? AND user_id = ?
`

type GetReservationForUserParams struct {
	ID     int64
	UserID string
}

func (q *Queries) GetReservationForUser(ctx context.Context, arg GetReservationForUserParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, getReservationForUser, arg.ID, arg.UserID)
	return scanReservation(row)
}

const updateReservationStatus = `
UPDATE reservations
SET status = ?
WHERE id = ?
RETURNING ` + reservationColumns

type UpdateReservationStatusParams struct {
	ID     int64
	Status string
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, arg UpdateReservationStatusParams) (Reservation, error) {
	row := q.db.QueryRowContext(ctx, updateReservationStatus, arg.Status, arg.ID)
	return scanReservation(row)
}

// ReservationWithCourt joins the court row in for display surfaces.
type ReservationWithCourt struct {
	Reservation
	Court Court `json:"court"`
}

const listReservationsByUser = `
SELECT r.id, r.user_id, r.court_id, r.start_time, r.end_time, r.total_price,
       r.status, r.payment_status, r.created_at, r.notes, r.reminder_sent,
       c.id, c.venue_id, c.sport_id, c.name, c.is_indoor, c.base_price, c.description
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE r.user_id = ?
ORDER BY r.start_time
`

func (q *Queries) ListReservationsByUser(ctx context.Context, userID string) ([]ReservationWithCourt, error) {
	rows, err := q.db.QueryContext(ctx, listReservationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []ReservationWithCourt{}
	for rows.Next() {
		var r ReservationWithCourt
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.CourtID, &r.StartTime, &r.EndTime,
			&r.TotalPrice, &r.Status, &r.PaymentStatus, &r.CreatedAt,
			&r.Notes, &r.ReminderSent,
			&r.Court.ID, &r.Court.VenueID, &r.Court.SportID, &r.Court.Name,
			&r.Court.IsIndoor, &r.Court.BasePrice, &r.Court.Description,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

const listCourtReservationsStartingFrom = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE court_id = ? AND start_time >= ?
ORDER BY start_time
`

type CourtReservationsParams struct {
	CourtID int64
	At      time.Time
}

func (q *Queries) ListCourtReservationsStartingFrom(ctx context.Context, arg CourtReservationsParams) ([]Reservation, error) {
	return q.listCourtReservations(ctx, listCourtReservationsStartingFrom, arg)
}

const listCourtReservationsStartingBefore = `
SELECT ` + reservationColumns + `
FROM reservations
WHERE court_id = ? AND start_time < ?
ORDER BY start_time
`

func (q *Queries) ListCourtReservationsStartingBefore(ctx context.Context, arg CourtReservationsParams) ([]Reservation, error) {
	return q.listCourtReservations(ctx, listCourtReservationsStartingBefore, arg)
}

func (q *Queries) listCourtReservations(ctx context.Context, query string, arg CourtReservationsParams) ([]Reservation, error) {
	rows, err := q.db.QueryContext(ctx, query, arg.CourtID, arg.At)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []Reservation{}
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

const listUnremindedReservationsStartingBetween = `
SELECT r.id, r.user_id, r.court_id, r.start_time, r.end_time, r.total_price,
       r.status, r.payment_status, r.created_at, r.notes, r.reminder_sent,
       c.id, c.venue_id, c.sport_id, c.name, c.is_indoor, c.base_price, c.description
FROM reservations r
JOIN courts c ON c.id = r.court_id
WHERE r.status = 'confirmed'
  AND r.reminder_sent = 0
  AND r.start_time >= ?
  AND r.start_time < ?
ORDER BY r.start_time
`

type ReservationsStartingBetweenParams struct {
	StartTime time.Time
	EndTime   time.Time
}

func (q *Queries) ListUnremindedReservationsStartingBetween(ctx context.Context, arg ReservationsStartingBetweenParams) ([]ReservationWithCourt, error) {
	rows, err := q.db.QueryContext(ctx, listUnremindedReservationsStartingBetween, arg.StartTime, arg.EndTime)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []ReservationWithCourt{}
	for rows.Next() {
		var r ReservationWithCourt
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.CourtID, &r.StartTime, &r.EndTime,
			&r.TotalPrice, &r.Status, &r.PaymentStatus, &r.CreatedAt,
			&r.Notes, &r.ReminderSent,
			&r.Court.ID, &r.Court.VenueID, &r.Court.SportID, &r.Court.Name,
			&r.Court.IsIndoor, &r.Court.BasePrice, &r.Court.Description,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

const markReservationReminded = `
UPDATE reservations
SET reminder_sent = 1
WHERE id = ?
`

func (q *Queries) MarkReservationReminded(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markReservationReminded, id)
	return err
}
