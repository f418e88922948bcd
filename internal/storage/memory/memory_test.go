package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/storage"
)

func TestSaveUserUniqueness(t *testing.T) {
	ctx := context.Background()
	r := New()

	first, err := r.SaveUser(ctx, "a@b", "A", []byte("h1"), true)
	if err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	if _, err := r.SaveUser(ctx, "a@b", "A2", []byte("h2"), true); !errors.Is(err, storage.ErrUserExists) {
		t.Fatalf("duplicate SaveUser error = %v, want ErrUserExists", err)
	}

	second, err := r.SaveUser(ctx, "a@b", "A3", []byte("h3"), false)
	if err != nil {
		t.Fatalf("non-unique SaveUser: %v", err)
	}
	if second == first {
		t.Fatalf("duplicate ids %d", first)
	}

	u, err := r.User(ctx, "a@b")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if u.ID != first {
		t.Fatalf("User returned id %d, want earliest %d", u.ID, first)
	}

	if _, err := r.UserByID(ctx, 999); !errors.Is(err, storage.ErrUserNotFound) {
		t.Fatalf("UserByID error = %v, want ErrUserNotFound", err)
	}
}

func TestSaveBookingRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	r := New()

	base := models.Booking{UserID: 1, RoomID: 101, Date: "2025-01-10", TimeStart: "10:00", TimeEnd: "11:00", Reason: "standup"}
	if _, err := r.SaveBooking(ctx, base); err != nil {
		t.Fatalf("SaveBooking: %v", err)
	}

	overlap := base
	overlap.TimeStart, overlap.TimeEnd = "10:30", "10:45"
	if _, err := r.SaveBooking(ctx, overlap); !errors.Is(err, storage.ErrTimeBooked) {
		t.Fatalf("overlapping SaveBooking error = %v, want ErrTimeBooked", err)
	}

	otherRoom := overlap
	otherRoom.RoomID = 102
	if _, err := r.SaveBooking(ctx, otherRoom); err != nil {
		t.Fatalf("SaveBooking other room: %v", err)
	}

	all, _ := r.Bookings(ctx, nil)
	if len(all) != 2 {
		t.Fatalf("Bookings(nil) = %d entries, want 2", len(all))
	}

	room := int64(101)
	only, _ := r.Bookings(ctx, &room)
	if len(only) != 1 || only[0].RoomID != 101 {
		t.Fatalf("Bookings(101) = %+v", only)
	}
}

func TestDeleteBooking(t *testing.T) {
	ctx := context.Background()
	r := New()

	id, err := r.SaveBooking(ctx, models.Booking{RoomID: 1, Date: "2025-01-10", TimeStart: "10:00", TimeEnd: "11:00"})
	if err != nil {
		t.Fatalf("SaveBooking: %v", err)
	}

	if err := r.DeleteBooking(ctx, id); err != nil {
		t.Fatalf("DeleteBooking: %v", err)
	}
	if err := r.DeleteBooking(ctx, id); !errors.Is(err, storage.ErrBookingNotFound) {
		t.Fatalf("second DeleteBooking error = %v, want ErrBookingNotFound", err)
	}
	if _, err := r.Booking(ctx, id); !errors.Is(err, storage.ErrBookingNotFound) {
		t.Fatalf("Booking error = %v, want ErrBookingNotFound", err)
	}
}

func TestResetRooms(t *testing.T) {
	ctx := context.Background()
	r := New()

	if _, err := r.SaveRoom(ctx, "old", ""); err != nil {
		t.Fatalf("SaveRoom: %v", err)
	}

	got, err := r.ResetRooms(ctx, []models.Room{{Name: "101"}, {Name: "102"}})
	if err != nil {
		t.Fatalf("ResetRooms: %v", err)
	}

	rooms, _ := r.Rooms(ctx)
	if len(rooms) != 2 || len(got) != 2 || rooms[0].Name != "101" || rooms[1].Name != "102" {
		t.Fatalf("Rooms after reset = %+v", rooms)
	}
}
