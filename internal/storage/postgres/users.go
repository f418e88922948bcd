package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/storage"

	"github.com/jackc/pgx/v5"
)

// SaveUser inserts a user. With uniqueEmail the insert is serialized per
// email by an advisory lock so two registrations cannot both pass the check.
func (r *PostgresRepo) SaveUser(ctx context.Context, email, name string, passHash []byte, uniqueEmail bool) (int64, error) {
	const op = "storage.postgres.SaveUser"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return -1, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if uniqueEmail {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, email); err != nil {
			return -1, fmt.Errorf("%s: %w", op, err)
		}

		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
		if err != nil {
			return -1, fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			return -1, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
	}

	var id int64
	err = tx.QueryRow(
		ctx,
		`INSERT INTO users (email, name, pass_hash) VALUES ($1, $2, $3) RETURNING id;`,
		email,
		name,
		passHash,
	).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return -1, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// User returns the earliest registered user with the given email.
func (r *PostgresRepo) User(ctx context.Context, email string) (models.User, error) {
	const op = "storage.postgres.User"

	var usr models.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, email, name, pass_hash FROM users WHERE email = $1 ORDER BY id LIMIT 1`,
		email,
	).Scan(&usr.ID, &usr.Email, &usr.Name, &usr.PassHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return usr, nil
}

func (r *PostgresRepo) UserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "storage.postgres.UserByID"

	var usr models.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, email, name FROM users WHERE id = $1`,
		userID,
	).Scan(&usr.ID, &usr.Email, &usr.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return usr, nil
}
