// Package booking enforces the reservation rules: no overlapping bookings
// for a room on a date, no bookings in the past, and deletion only by the
// owner or an administrator.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/lib/timeslot"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/storage"
)

var (
	ErrPastTime        = errors.New("cannot book past time")
	ErrEmptyReason     = errors.New("booking reason is required")
	ErrInvalidRange    = errors.New("booking must end after it starts")
	ErrInvalidRoom     = errors.New("room id is required")
	ErrTimeBooked      = errors.New("time already booked")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("only the owner or an administrator can delete a booking")
)

type Storage interface {
	SaveBooking(ctx context.Context, booking models.Booking) (int64, error)
	Bookings(ctx context.Context, roomID *int64) ([]models.Booking, error)
	BookingsForDay(ctx context.Context, roomID int64, date string) ([]models.Booking, error)
	Booking(ctx context.Context, id int64) (models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// SlotLocker serializes check-and-insert for one room on one date.
type SlotLocker interface {
	Lock(ctx context.Context, roomID int64, date string) (unlock func(), err error)
}

type Request struct {
	RoomID    int64
	Date      string
	TimeStart string
	TimeEnd   string
	Reason    string
}

type Service struct {
	log      *slog.Logger
	storage  Storage
	locker   SlotLocker
	location *time.Location
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone wall-clock booking times are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.location = loc }
}

func NewService(log *slog.Logger, st Storage, locker SlotLocker, opts ...Option) *Service {
	s := &Service{
		log:      log,
		storage:  st,
		locker:   locker,
		location: time.Local,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Create(ctx context.Context, userID int64, req Request) (models.Booking, error) {
	const op = "booking.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
		slog.Int64("room_id", req.RoomID),
	)

	booking, err := s.normalize(userID, req)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	start, err := timeslot.Instant(booking.Date, booking.TimeStart, s.location)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if start.Before(s.now()) {
		log.Warn("attempt to book past time", slog.Time("start", start))

		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrPastTime)
	}

	if strings.TrimSpace(booking.Reason) == "" {
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrEmptyReason)
	}

	candidate := timeslot.Interval{Start: booking.TimeStart, End: booking.TimeEnd}
	if !candidate.Valid() {
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrInvalidRange)
	}

	unlock, err := s.locker.Lock(ctx, booking.RoomID, booking.Date)
	if err != nil {
		log.Error("failed to lock booking slot", sl.Err(err))

		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	defer unlock()

	existing, err := s.storage.BookingsForDay(ctx, booking.RoomID, booking.Date)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	intervals := make([]timeslot.Interval, len(existing))
	for i, b := range existing {
		intervals[i] = timeslot.Interval{Start: b.TimeStart, End: b.TimeEnd}
	}

	if i := timeslot.FirstOverlap(candidate, intervals); i >= 0 {
		log.Warn("time already booked",
			slog.String("date", booking.Date),
			slog.String("requested", candidate.String()),
			slog.Int64("conflicts_with", existing[i].ID),
		)

		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrTimeBooked)
	}

	id, err := s.storage.SaveBooking(ctx, booking)
	if err != nil {
		if errors.Is(err, storage.ErrTimeBooked) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, ErrTimeBooked)
		}

		log.Error("failed to save booking", sl.Err(err))

		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	booking.ID = id

	log.Info("booking created",
		slog.Int64("booking_id", id),
		slog.String("date", booking.Date),
		slog.String("slot", candidate.String()),
	)

	return booking, nil
}

// List returns all bookings, or the bookings of one room when roomID is set.
func (s *Service) List(ctx context.Context, roomID *int64) ([]models.Booking, error) {
	const op = "booking.List"

	bookings, err := s.storage.Bookings(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Service) Delete(ctx context.Context, caller models.Caller, bookingID int64) error {
	const op = "booking.Delete"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("booking_id", bookingID),
		slog.Int64("user_id", caller.UserID),
		slog.Bool("is_admin", caller.IsAdmin),
	)

	b, err := s.storage.Booking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if !caller.IsAdmin && b.UserID != caller.UserID {
		log.Warn("user tried to delete a booking they do not own", slog.Int64("owner_id", b.UserID))

		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if err := s.storage.DeleteBooking(ctx, bookingID); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("booking deleted")

	return nil
}

func (s *Service) normalize(userID int64, req Request) (models.Booking, error) {
	if req.RoomID <= 0 {
		return models.Booking{}, ErrInvalidRoom
	}

	date, err := timeslot.NormalizeDate(req.Date)
	if err != nil {
		return models.Booking{}, err
	}

	start, err := timeslot.NormalizeClock(req.TimeStart)
	if err != nil {
		return models.Booking{}, err
	}

	end, err := timeslot.NormalizeClock(req.TimeEnd)
	if err != nil {
		return models.Booking{}, err
	}

	return models.Booking{
		UserID:    userID,
		RoomID:    req.RoomID,
		Date:      date,
		TimeStart: start,
		TimeEnd:   end,
		Reason:    req.Reason,
	}, nil
}
