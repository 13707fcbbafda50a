// internal/db/models.go
package db

import (
	"database/sql"
	"time"
)

// Reservation lifecycle. Rows are created confirmed and only ever transition
// to cancelled; "pending" is reserved for an owner-approval flow.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

type Sport struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description sql.NullString `json:"description"`
}

type Venue struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	PhoneNumber sql.NullString `json:"phone_number"`
	Description sql.NullString `json:"description"`
	// Amenities is a JSON array of strings, Coordinates a JSON {lat,lng}
	// object; both stored verbatim as text.
	Amenities   string `json:"amenities"`
	Coordinates string `json:"coordinates"`
	OwnerID     string `json:"owner_id"`
}

type Court struct {
	ID          int64          `json:"id"`
	VenueID     int64          `json:"venue_id"`
	SportID     int64          `json:"sport_id"`
	Name        string         `json:"name"`
	IsIndoor    bool           `json:"is_indoor"`
	BasePrice   float64        `json:"base_price"`
	Description sql.NullString `json:"description"`
}

type OperatingHours struct {
	ID        int64  `json:"id"`
	VenueID   int64  `json:"venue_id"`
	DayOfWeek int64  `json:"day_of_week"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type Reservation struct {
	ID            int64          `json:"id"`
	UserID        string         `json:"user_id"`
	CourtID       int64          `json:"court_id"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       time.Time      `json:"end_time"`
	TotalPrice    float64        `json:"total_price"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"payment_status"`
	CreatedAt     time.Time      `json:"created_at"`
	Notes         sql.NullString `json:"notes"`
	ReminderSent  bool           `json:"-"`
}

type Notification struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Icon      sql.NullString `json:"icon"`
	Sent      bool           `json:"sent"`
	CreatedAt time.Time      `json:"created_at"`
}
