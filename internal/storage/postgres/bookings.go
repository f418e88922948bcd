package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/storage"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const selectBookings = `SELECT id, user_id, room_id,
	to_char(booking_date, 'YYYY-MM-DD'),
	to_char(time_start, 'HH24:MI'),
	to_char(time_end, 'HH24:MI'),
	reason
FROM bookings`

// SaveBooking inserts a booking. The bookings_no_overlap exclusion
// constraint rejects overlapping rows even if the caller skipped the slot lock.
func (r *PostgresRepo) SaveBooking(ctx context.Context, booking models.Booking) (int64, error) {
	const op = "storage.postgres.SaveBooking"

	var id int64
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO bookings (user_id, room_id, booking_date, time_start, time_end, reason)
		VALUES ($1, $2, $3::text::date, $4::text::time, $5::text::time, $6) RETURNING id;`,
		booking.UserID,
		booking.RoomID,
		booking.Date,
		booking.TimeStart,
		booking.TimeEnd,
		booking.Reason,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return -1, fmt.Errorf("%s: %w", op, storage.ErrTimeBooked)
		}

		return -1, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Bookings возвращает все брони либо брони одной комнаты, если roomID не nil.
func (r *PostgresRepo) Bookings(ctx context.Context, roomID *int64) ([]models.Booking, error) {
	const op = "storage.postgres.Bookings"

	rows, err := r.pool.Query(
		ctx,
		selectBookings+` WHERE ($1::bigint IS NULL OR room_id = $1) ORDER BY id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Booking])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (r *PostgresRepo) BookingsForDay(ctx context.Context, roomID int64, date string) ([]models.Booking, error) {
	const op = "storage.postgres.BookingsForDay"

	rows, err := r.pool.Query(
		ctx,
		selectBookings+` WHERE room_id = $1 AND booking_date = $2::text::date ORDER BY time_start`,
		roomID,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookings, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Booking])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (r *PostgresRepo) Booking(ctx context.Context, id int64) (models.Booking, error) {
	const op = "storage.postgres.Booking"

	rows, err := r.pool.Query(ctx, selectBookings+` WHERE id = $1`, id)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	booking, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[models.Booking])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}

		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return booking, nil
}

func (r *PostgresRepo) DeleteBooking(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteBooking"

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}
