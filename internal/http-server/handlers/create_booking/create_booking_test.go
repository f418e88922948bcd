package createbooking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FANATBEBRbl/booking-app/internal/lib/timeslot"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/services/booking"
	"github.com/FANATBEBRbl/booking-app/internal/storage"
)

type fakeCreator struct {
	err    error
	called bool
	userID int64
	req    booking.Request
}

func (f *fakeCreator) Create(_ context.Context, userID int64, req booking.Request) (models.Booking, error) {
	f.called = true
	f.userID = userID
	f.req = req

	if f.err != nil {
		return models.Booking{}, f.err
	}

	return models.Booking{ID: 1, UserID: userID, RoomID: req.RoomID}, nil
}

func serve(t *testing.T, creator BookingCreator, caller *models.Caller, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req = req.WithContext(context.WithValue(req.Context(), models.CallerKey, *caller))
	}

	rec := httptest.NewRecorder()
	New(slog.New(slog.NewTextHandler(io.Discard, nil)), creator).ServeHTTP(rec, req)

	return rec
}

const validBody = `{"roomId":1,"date":"2025-01-10","timeStart":"10:00","timeEnd":"11:00","reason":"standup"}`

func TestCreateBooking_Created(t *testing.T) {
	creator := &fakeCreator{}
	caller := &models.Caller{UserID: 42}

	rec := serve(t, creator, caller, validBody)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}
	if got := rec.Body.String(); got != "Booking created" {
		t.Fatalf("body = %q, want %q", got, "Booking created")
	}
	if creator.userID != 42 {
		t.Fatalf("owner = %d, want token user 42", creator.userID)
	}
	want := booking.Request{RoomID: 1, Date: "2025-01-10", TimeStart: "10:00", TimeEnd: "11:00", Reason: "standup"}
	if creator.req != want {
		t.Fatalf("request = %+v, want %+v", creator.req, want)
	}
}

func TestCreateBooking_StringIDs(t *testing.T) {
	creator := &fakeCreator{}
	caller := &models.Caller{UserID: 7}

	body := `{"userId":"7","roomId":"3","date":"2025-01-10","timeStart":"9:00","timeEnd":"9:30","reason":"x"}`
	rec := serve(t, creator, caller, body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}
	if creator.req.RoomID != 3 {
		t.Fatalf("room id = %d, want 3", creator.req.RoomID)
	}
}

func TestCreateBooking_OtherUserInBody(t *testing.T) {
	creator := &fakeCreator{}
	caller := &models.Caller{UserID: 7}

	body := `{"userId":8,"roomId":1,"date":"2025-01-10","timeStart":"10:00","timeEnd":"11:00","reason":"x"}`
	rec := serve(t, creator, caller, body)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if creator.called {
		t.Fatal("service must not be called for a foreign userId")
	}
}

func TestCreateBooking_NoCaller(t *testing.T) {
	rec := serve(t, &fakeCreator{}, nil, validBody)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCreateBooking_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"missing room", `{"date":"2025-01-10","timeStart":"10:00","timeEnd":"11:00","reason":"x"}`},
		{"garbage room", `{"roomId":"abc","date":"2025-01-10","timeStart":"10:00","timeEnd":"11:00","reason":"x"}`},
		{"missing date", `{"roomId":1,"timeStart":"10:00","timeEnd":"11:00","reason":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeCreator{}
			rec := serve(t, creator, &models.Caller{UserID: 1}, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body)
			}
			if creator.called {
				t.Fatal("service must not be called for an invalid body")
			}
		})
	}
}

func TestCreateBooking_ServiceErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{booking.ErrPastTime, http.StatusBadRequest, "Cannot book past time"},
		{booking.ErrEmptyReason, http.StatusBadRequest, "Reason is required"},
		{booking.ErrTimeBooked, http.StatusBadRequest, "Time already booked"},
		{booking.ErrInvalidRange, http.StatusBadRequest, "Booking must end after it starts"},
		{timeslot.ErrInvalidDate, http.StatusBadRequest, "Date must be in YYYY-MM-DD format"},
		{timeslot.ErrInvalidClock, http.StatusBadRequest, "Time must be in HH:mm format"},
		{storage.ErrSlotBusy, http.StatusServiceUnavailable, "Slot is busy, try again"},
		{fmt.Errorf("db down"), http.StatusInternalServerError, "Failed to create booking"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			creator := &fakeCreator{err: fmt.Errorf("booking.Create: %w", tt.err)}
			rec := serve(t, creator, &models.Caller{UserID: 1}, validBody)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantMsg) {
				t.Fatalf("body = %s, want message %q", rec.Body, tt.wantMsg)
			}
		})
	}
}
