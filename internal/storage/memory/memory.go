// Package memory is a process-local implementation of the user, room and
// booking stores. It is used with storage.driver=memory and by tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/storage"
)

type Repo struct {
	mu sync.RWMutex

	nextUserID    int64
	nextRoomID    int64
	nextBookingID int64

	users    []models.User
	rooms    []models.Room
	bookings []models.Booking
}

func New() *Repo {
	return &Repo{}
}

func (r *Repo) SaveUser(ctx context.Context, email, name string, passHash []byte, uniqueEmail bool) (int64, error) {
	const op = "storage.memory.SaveUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	if uniqueEmail {
		for _, u := range r.users {
			if u.Email == email {
				return 0, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
			}
		}
	}

	r.nextUserID++
	r.users = append(r.users, models.User{
		ID:       r.nextUserID,
		Email:    email,
		Name:     name,
		PassHash: append([]byte(nil), passHash...),
	})

	return r.nextUserID, nil
}

// User returns the earliest registered user with the given email.
func (r *Repo) User(ctx context.Context, email string) (models.User, error) {
	const op = "storage.memory.User"

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (r *Repo) UserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "storage.memory.UserByID"

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (r *Repo) SaveRoom(ctx context.Context, name, description string) (models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextRoomID++
	room := models.Room{ID: r.nextRoomID, Name: name, Description: description}
	r.rooms = append(r.rooms, room)

	return room, nil
}

func (r *Repo) Rooms(ctx context.Context) ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Room{}, r.rooms...), nil
}

func (r *Repo) ResetRooms(ctx context.Context, rooms []models.Room) ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = r.rooms[:0]
	for _, room := range rooms {
		r.nextRoomID++
		room.ID = r.nextRoomID
		r.rooms = append(r.rooms, room)
	}

	return append([]models.Room{}, r.rooms...), nil
}

// SaveBooking inserts the booking unless it overlaps an existing one for the
// same room and date.
func (r *Repo) SaveBooking(ctx context.Context, booking models.Booking) (int64, error) {
	const op = "storage.memory.SaveBooking"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.RoomID == booking.RoomID && b.Date == booking.Date &&
			b.TimeStart < booking.TimeEnd && booking.TimeStart < b.TimeEnd {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrTimeBooked)
		}
	}

	r.nextBookingID++
	booking.ID = r.nextBookingID
	r.bookings = append(r.bookings, booking)

	return booking.ID, nil
}

// Bookings returns all bookings, or those of one room when roomID is not nil.
func (r *Repo) Bookings(ctx context.Context, roomID *int64) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if roomID == nil || b.RoomID == *roomID {
			out = append(out, b)
		}
	}

	return out, nil
}

func (r *Repo) BookingsForDay(ctx context.Context, roomID int64, date string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.Date == date {
			out = append(out, b)
		}
	}

	return out, nil
}

func (r *Repo) Booking(ctx context.Context, id int64) (models.Booking, error) {
	const op = "storage.memory.Booking"

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}

	return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
}

func (r *Repo) DeleteBooking(ctx context.Context, id int64) error {
	const op = "storage.memory.DeleteBooking"

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
}

func (r *Repo) Close() {}
