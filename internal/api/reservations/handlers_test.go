package reservations

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/courtsideapp/courtside/internal/api/authz"
	"github.com/courtsideapp/courtside/internal/booking"
	appdb "github.com/courtsideapp/courtside/internal/db"
	"github.com/courtsideapp/courtside/internal/testutil"
)

func setupReservationsTest(t *testing.T) (*appdb.DB, int64) {
	t.Helper()

	database := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := database.ExecContext(ctx, "INSERT INTO sports (id, name) VALUES (1, 'Tennis')")
	if err != nil {
		t.Fatalf("insert sport: %v", err)
	}
	_, err = database.ExecContext(ctx,
		"INSERT INTO venues (id, name, address, city, amenities, coordinates, owner_id) VALUES (1, 'Riverside Courts', '2 Net Ave', 'Springfield', '[]', '{}', 'owner_1')",
	)
	if err != nil {
		t.Fatalf("insert venue: %v", err)
	}
	courtResult, err := database.ExecContext(ctx,
		"INSERT INTO courts (venue_id, sport_id, name, base_price) VALUES (1, 1, 'Court A', 15.0)",
	)
	if err != nil {
		t.Fatalf("insert court: %v", err)
	}
	courtID, err := courtResult.LastInsertId()
	if err != nil {
		t.Fatalf("court id: %v", err)
	}

	service = nil
	listCache = nil
	serviceOnce = sync.Once{}
	InitHandlers(booking.NewService(database, nil), nil)

	t.Cleanup(func() {
		service = nil
		listCache = nil
		serviceOnce = sync.Once{}
	})

	return database, courtID
}

func withIdentity(req *http.Request, userID string) *http.Request {
	return req.WithContext(authz.ContextWithIdentity(req.Context(), &authz.Identity{UserID: userID}))
}

func createBody(courtID int64, date string, times ...string) string {
	payload := map[string]any{
		"court_id": courtID,
		"date":     date,
		"times":    times,
	}
	body, _ := json.Marshal(payload)
	return string(body)
}

func tomorrowDate() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

func TestHandleReservationCreate(t *testing.T) {
	_, courtID := setupReservationsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(courtID, tomorrowDate(), "09:00", "10:00")))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, "user_1")
	rec := httptest.NewRecorder()

	HandleReservationCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var created appdb.Reservation
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.TotalPrice != 30 {
		t.Errorf("total price = %v, want 30", created.TotalPrice)
	}
	if created.Status != appdb.ReservationStatusConfirmed {
		t.Errorf("status = %q, want confirmed", created.Status)
	}
}

func TestHandleReservationCreateUnauthenticated(t *testing.T) {
	_, courtID := setupReservationsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(courtID, tomorrowDate(), "09:00")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	HandleReservationCreate(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeError(t, rec); got != "User is not authenticated" {
		t.Errorf("error = %q", got)
	}
}

func TestHandleReservationCreateConflict(t *testing.T) {
	database, courtID := setupReservationsTest(t)

	first := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(courtID, tomorrowDate(), "09:00", "10:00")))
	first.Header.Set("Content-Type", "application/json")
	first = withIdentity(first, "user_1")
	firstRec := httptest.NewRecorder()
	HandleReservationCreate(firstRec, first)
	if firstRec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d: %s", firstRec.Code, firstRec.Body.String())
	}

	second := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(courtID, tomorrowDate(), "10:00")))
	second.Header.Set("Content-Type", "application/json")
	second = withIdentity(second, "user_2")
	secondRec := httptest.NewRecorder()
	HandleReservationCreate(secondRec, second)

	if secondRec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", secondRec.Code, secondRec.Body.String())
	}
	if got := decodeError(t, secondRec); got != "Time slot is already reserved" {
		t.Errorf("error = %q", got)
	}

	var count int64
	if err := database.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM reservations").Scan(&count); err != nil {
		t.Fatalf("count reservations: %v", err)
	}
	if count != 1 {
		t.Errorf("reservation count = %d, want 1", count)
	}
}

func TestHandleReservationCreateCourtNotFound(t *testing.T) {
	setupReservationsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(9999, tomorrowDate(), "09:00")))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, "user_1")
	rec := httptest.NewRecorder()

	HandleReservationCreate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec); got != "Court not found" {
		t.Errorf("error = %q", got)
	}
}

func TestHandleReservationCreateRejectsGappedSlots(t *testing.T) {
	_, courtID := setupReservationsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(courtID, tomorrowDate(), "09:00", "11:00")))
	req.Header.Set("Content-Type", "application/json")
	req = withIdentity(req, "user_1")
	rec := httptest.NewRecorder()

	HandleReservationCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleReservationCancel(t *testing.T) {
	_, courtID := setupReservationsTest(t)

	create := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(courtID, tomorrowDate(), "09:00")))
	create.Header.Set("Content-Type", "application/json")
	create = withIdentity(create, "user_1")
	createRec := httptest.NewRecorder()
	HandleReservationCreate(createRec, create)
	if createRec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", createRec.Code, createRec.Body.String())
	}
	var created appdb.Reservation
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/reservations/%d/cancel", created.ID), nil)
	req.SetPathValue("id", fmt.Sprintf("%d", created.ID))
	req = withIdentity(req, "user_1")
	rec := httptest.NewRecorder()

	HandleReservationCancel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var updated appdb.Reservation
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Status != appdb.ReservationStatusCancelled {
		t.Errorf("status = %q, want cancelled", updated.Status)
	}
}

func TestHandleReservationCancelNotFound(t *testing.T) {
	setupReservationsTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/424242/cancel", nil)
	req.SetPathValue("id", "424242")
	req = withIdentity(req, "user_1")
	rec := httptest.NewRecorder()

	HandleReservationCancel(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decodeError(t, rec); got != "Reservation not found" {
		t.Errorf("error = %q", got)
	}
}

func TestHandleMyReservations(t *testing.T) {
	database, courtID := setupReservationsTest(t)
	ctx := context.Background()

	create := httptest.NewRequest(http.MethodPost, "/api/v1/reservations",
		strings.NewReader(createBody(courtID, tomorrowDate(), "09:00")))
	create.Header.Set("Content-Type", "application/json")
	create = withIdentity(create, "user_1")
	createRec := httptest.NewRecorder()
	HandleReservationCreate(createRec, create)
	if createRec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", createRec.Code, createRec.Body.String())
	}

	pastStart := time.Now().UTC().Add(-24 * time.Hour)
	_, err := database.ExecContext(ctx,
		"INSERT INTO reservations (user_id, court_id, start_time, end_time, total_price, status) VALUES (?, ?, ?, ?, ?, ?)",
		"user_1", courtID, pastStart, pastStart.Add(time.Hour), 15.0, appdb.ReservationStatusConfirmed,
	)
	if err != nil {
		t.Fatalf("insert past reservation: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/my", nil)
	req = withIdentity(req, "user_1")
	rec := httptest.NewRecorder()

	HandleMyReservations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var list booking.ReservationList
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
