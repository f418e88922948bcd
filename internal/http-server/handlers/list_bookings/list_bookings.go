package listbookings

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	resp "github.com/FANATBEBRbl/booking-app/internal/lib/api/response"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type BookingLister interface {
	List(ctx context.Context, roomID *int64) ([]models.Booking, error)
}

func New(log *slog.Logger, lister BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.list_bookings.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var roomID *int64
		if raw := r.URL.Query().Get("roomId"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Info("malformed room id", slog.String("room_id", raw))

				resp.WriteError(w, r, http.StatusBadRequest, "Invalid roomId")

				return
			}
			roomID = &id
		}

		bookings, err := lister.List(r.Context(), roomID)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))

			resp.WriteError(w, r, http.StatusInternalServerError, "Failed to get bookings")

			return
		}

		if bookings == nil {
			bookings = []models.Booking{}
		}

		render.JSON(w, r, bookings)
	}
}
