package createroom

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FANATBEBRbl/booking-app/internal/http-server/middleware/guard"
	resp "github.com/FANATBEBRbl/booking-app/internal/lib/api/response"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/services/rooms"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Request struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type RoomCreator interface {
	Create(ctx context.Context, caller models.Caller, name, description string) (models.Room, error)
}

func New(log *slog.Logger, creator RoomCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.create_room.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		caller, ok := guard.CallerFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, http.StatusUnauthorized, "Unauthorized")

			return
		}

		// не-админ получает 403 независимо от тела запроса
		if !caller.IsAdmin {
			log.Warn("non-admin tried to create a room", slog.Int64("user_id", caller.UserID))

			resp.WriteError(w, r, http.StatusForbidden, "Forbidden")

			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			resp.WriteError(w, r, http.StatusBadRequest, "Failed to decode request")

			return
		}

		if !resp.Validate(w, r, req) {
			log.Info("invalid request")

			return
		}

		room, err := creator.Create(r.Context(), caller, req.Name, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, rooms.ErrForbidden):
				resp.WriteError(w, r, http.StatusForbidden, "Forbidden")
			case errors.Is(err, rooms.ErrEmptyName):
				resp.WriteError(w, r, http.StatusBadRequest, "Room name is required")
			default:
				log.Error("failed to create room", sl.Err(err))

				resp.WriteError(w, r, http.StatusInternalServerError, "Failed to create room")
			}

			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, room)
	}
}
