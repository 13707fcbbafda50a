package courts

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/courtsideapp/courtside/internal/booking"
	appdb "github.com/courtsideapp/courtside/internal/db"
	"github.com/courtsideapp/courtside/internal/testutil"
)

func setupCourtsTest(t *testing.T) (*appdb.DB, int64) {
	t.Helper()

	database := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := database.ExecContext(ctx, "INSERT INTO sports (id, name) VALUES (1, 'Badminton')")
	if err != nil {
		t.Fatalf("insert sport: %v", err)
	}
	_, err = database.ExecContext(ctx,
		"INSERT INTO venues (id, name, address, city, amenities, coordinates, owner_id) VALUES (1, 'East Side Sports', '9 Gym Rd', 'Springfield', '[]', '{}', 'owner_1')",
	)
	if err != nil {
		t.Fatalf("insert venue: %v", err)
	}
	courtResult, err := database.ExecContext(ctx,
		"INSERT INTO courts (venue_id, sport_id, name, base_price) VALUES (1, 1, 'Court B', 12.0)",
	)
	if err != nil {
		t.Fatalf("insert court: %v", err)
	}
	courtID, err := courtResult.LastInsertId()
	if err != nil {
		t.Fatalf("court id: %v", err)
	}

	service = nil
	serviceOnce = sync.Once{}
	InitHandlers(booking.NewService(database, nil))

	t.Cleanup(func() {
		service = nil
		serviceOnce = sync.Once{}
	})

	return database, courtID
}

func insertReservation(t *testing.T, database *appdb.DB, courtID int64, start time.Time) {
	t.Helper()
	_, err := database.ExecContext(context.Background(),
		"INSERT INTO reservations (user_id, court_id, start_time, end_time, total_price, status) VALUES (?, ?, ?, ?, ?, ?)",
		"user_1", courtID, start.UTC(), start.UTC().Add(time.Hour), 12.0, appdb.ReservationStatusConfirmed,
	)
	if err != nil {
		t.Fatalf("insert reservation: %v", err)
	}
}

func TestHandleCourtReservations(t *testing.T) {
	database, courtID := setupCourtsTest(t)

	insertReservation(t, database, courtID, time.Now().Add(24*time.Hour))
	insertReservation(t, database, courtID, time.Now().Add(-24*time.Hour))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/courts/%d/reservations", courtID), nil)
	req.SetPathValue("id", fmt.Sprintf("%d", courtID))
	rec := httptest.NewRecorder()

	HandleCourtReservations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var list booking.CourtReservationList
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Upcoming) != 1 {
		t.Errorf("upcoming = %d, want 1", len(list.Upcoming))
	}
	if len(list.Past) != 1 {
		t.Errorf("past = %d, want 1", len(list.Past))
	}
}

func TestHandleCourtReservationsBadID(t *testing.T) {
	setupCourtsTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courts/abc/reservations", nil)
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()

	HandleCourtReservations(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpcomingReservations(t *testing.T) {
	database, courtID := setupCourtsTest(t)

	insertReservation(t, database, courtID, time.Now().Add(24*time.Hour))
	insertReservation(t, database, courtID, time.Now().Add(-72*time.Hour))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/reservations?court_id=%d", courtID), nil)
	rec := httptest.NewRecorder()

	HandleUpcomingReservations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var reservations []appdb.Reservation
	if err := json.Unmarshal(rec.Body.Bytes(), &reservations); err != nil {
		t.Fatalf("decode reservations: %v", err)
	}
	if len(reservations) != 1 {
		t.Errorf("reservations = %d, want 1", len(reservations))
	}
}

func TestHandleUpcomingReservationsMissingCourtID(t *testing.T) {
	setupCourtsTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
	rec := httptest.NewRecorder()

	HandleUpcomingReservations(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] != "Court ID is required" {
		t.Errorf("error = %q", body["error"])
	}
}
