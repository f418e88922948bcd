package listrooms

import (
	"context"
	"log/slog"
	"net/http"

	resp "github.com/FANATBEBRbl/booking-app/internal/lib/api/response"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type RoomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

func New(log *slog.Logger, lister RoomLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.list_rooms.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		rooms, err := lister.List(r.Context())
		if err != nil {
			log.Error("failed to list rooms", sl.Err(err))

			resp.WriteError(w, r, http.StatusInternalServerError, "Failed to get rooms")

			return
		}

		if rooms == nil {
			rooms = []models.Room{}
		}

		render.JSON(w, r, rooms)
	}
}
