package deletebooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/FANATBEBRbl/booking-app/internal/http-server/middleware/guard"
	resp "github.com/FANATBEBRbl/booking-app/internal/lib/api/response"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/services/booking"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	Success bool `json:"success"`
}

type BookingDeleter interface {
	Delete(ctx context.Context, caller models.Caller, bookingID int64) error
}

func New(log *slog.Logger, deleter BookingDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.delete_booking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		caller, ok := guard.CallerFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, http.StatusUnauthorized, "Unauthorized")

			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			log.Info("malformed booking id", slog.String("id", chi.URLParam(r, "id")))

			resp.WriteError(w, r, http.StatusBadRequest, "Invalid booking id")

			return
		}

		err = deleter.Delete(r.Context(), caller, id)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrBookingNotFound):
				resp.WriteError(w, r, http.StatusNotFound, "Booking not found")
			case errors.Is(err, booking.ErrForbidden):
				resp.WriteError(w, r, http.StatusForbidden, "Forbidden")
			default:
				log.Error("failed to delete booking", sl.Err(err))

				resp.WriteError(w, r, http.StatusInternalServerError, "Failed to delete booking")
			}

			return
		}

		render.JSON(w, r, Response{Success: true})
	}
}
