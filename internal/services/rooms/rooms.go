package rooms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"
)

var (
	ErrForbidden = errors.New("only administrators can manage rooms")
	ErrEmptyName = errors.New("room name is required")
)

type Storage interface {
	SaveRoom(ctx context.Context, name, description string) (models.Room, error)
	Rooms(ctx context.Context) ([]models.Room, error)
	ResetRooms(ctx context.Context, rooms []models.Room) ([]models.Room, error)
}

type Service struct {
	log     *slog.Logger
	storage Storage
}

func New(log *slog.Logger, storage Storage) *Service {
	return &Service{
		log:     log,
		storage: storage,
	}
}

func (s *Service) List(ctx context.Context) ([]models.Room, error) {
	const op = "rooms.List"

	rooms, err := s.storage.Rooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rooms, nil
}

func (s *Service) Create(ctx context.Context, caller models.Caller, name, description string) (models.Room, error) {
	const op = "rooms.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", caller.UserID),
	)

	if !caller.IsAdmin {
		log.Warn("non-admin tried to create a room")

		return models.Room{}, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Room{}, fmt.Errorf("%s: %w", op, ErrEmptyName)
	}

	room, err := s.storage.SaveRoom(ctx, name, strings.TrimSpace(description))
	if err != nil {
		log.Error("failed to save room", sl.Err(err))

		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("room created", slog.Int64("room_id", room.ID))

	return room, nil
}

// Reset deletes every room and stores the given ones instead.
func (s *Service) Reset(ctx context.Context, seed []models.Room) ([]models.Room, error) {
	const op = "rooms.Reset"

	for _, r := range seed {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrEmptyName)
		}
	}

	rooms, err := s.storage.ResetRooms(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("rooms reset", slog.String("op", op), slog.Int("count", len(rooms)))

	return rooms, nil
}
