// internal/booking/errors.go
package booking

import "errors"

var (
	ErrNotAuthenticated    = errors.New("user is not authenticated")
	ErrCourtNotFound       = errors.New("court not found")
	ErrSlotTaken           = errors.New("time slot is already reserved")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAlreadyCancelled    = errors.New("reservation is already cancelled")
	ErrPastReservation     = errors.New("cannot cancel past reservations")
)
