package postgres

import (
	"context"
	"fmt"

	"github.com/FANATBEBRbl/booking-app/internal/models"

	"github.com/jackc/pgx/v5"
)

func (r *PostgresRepo) SaveRoom(ctx context.Context, name, description string) (models.Room, error) {
	const op = "storage.postgres.SaveRoom"

	room := models.Room{Name: name, Description: description}

	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO rooms (name, description) VALUES ($1, $2) RETURNING id;`,
		name,
		description,
	).Scan(&room.ID)
	if err != nil {
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

func (r *PostgresRepo) Rooms(ctx context.Context) ([]models.Room, error) {
	const op = "storage.postgres.Rooms"

	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM rooms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rooms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Room])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rooms, nil
}

// ResetRooms replaces every room with the given list in one transaction.
func (r *PostgresRepo) ResetRooms(ctx context.Context, rooms []models.Room) ([]models.Room, error) {
	const op = "storage.postgres.ResetRooms"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM rooms`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		err := tx.QueryRow(
			ctx,
			`INSERT INTO rooms (name, description) VALUES ($1, $2) RETURNING id;`,
			room.Name,
			room.Description,
		).Scan(&room.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, room)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
