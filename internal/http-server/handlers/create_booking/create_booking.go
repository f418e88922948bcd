package createbooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/FANATBEBRbl/booking-app/internal/http-server/middleware/guard"
	resp "github.com/FANATBEBRbl/booking-app/internal/lib/api/response"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/lib/timeslot"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/services/booking"
	"github.com/FANATBEBRbl/booking-app/internal/storage"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// Request mirrors what the calendar client posts. Reason is checked by the
// booking service so that a past slot is reported before an empty reason.
type Request struct {
	UserID    *ID    `json:"userId,omitempty"`
	RoomID    ID     `json:"roomId" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required"`
	TimeStart string `json:"timeStart" validate:"required"`
	TimeEnd   string `json:"timeEnd" validate:"required"`
	Reason    string `json:"reason"`
}

type BookingCreator interface {
	Create(ctx context.Context, userID int64, req booking.Request) (models.Booking, error)
}

func New(log *slog.Logger, creator BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.create_booking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		caller, ok := guard.CallerFromContext(r.Context())
		if !ok {
			resp.WriteError(w, r, http.StatusUnauthorized, "Unauthorized")

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

		// Владелец брони всегда берётся из токена
		if req.UserID != nil && int64(*req.UserID) != caller.UserID {
			log.Warn("user tried to book on behalf of another user",
				slog.Int64("user_id", caller.UserID),
				slog.Int64("body_user_id", int64(*req.UserID)),
			)

			resp.WriteError(w, r, http.StatusForbidden, "Cannot book on behalf of another user")

			return
		}

		b, err := creator.Create(r.Context(), caller.UserID, booking.Request{
			RoomID:    int64(req.RoomID),
			Date:      req.Date,
			TimeStart: req.TimeStart,
			TimeEnd:   req.TimeEnd,
			Reason:    req.Reason,
		})
		if err != nil {
			status, msg := errorStatus(err)
			if status == http.StatusInternalServerError {
				log.Error("failed to create booking", sl.Err(err))
			}

			resp.WriteError(w, r, status, msg)

			return
		}

		log.Info("booking created", slog.Int64("booking_id", b.ID))

		render.Status(r, http.StatusCreated)
		render.PlainText(w, r, "Booking created")
	}
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, booking.ErrPastTime):
		return http.StatusBadRequest, "Cannot book past time"
	case errors.Is(err, booking.ErrEmptyReason):
		return http.StatusBadRequest, "Reason is required"
	case errors.Is(err, booking.ErrTimeBooked):
		return http.StatusBadRequest, "Time already booked"
	case errors.Is(err, booking.ErrInvalidRange):
		return http.StatusBadRequest, "Booking must end after it starts"
	case errors.Is(err, booking.ErrInvalidRoom):
		return http.StatusBadRequest, "Room id is required"
	case errors.Is(err, timeslot.ErrInvalidDate):
		return http.StatusBadRequest, "Date must be in YYYY-MM-DD format"
	case errors.Is(err, timeslot.ErrInvalidClock):
		return http.StatusBadRequest, "Time must be in HH:mm format"
	case errors.Is(err, storage.ErrSlotBusy):
		return http.StatusServiceUnavailable, "Slot is busy, try again"
	default:
		return http.StatusInternalServerError, "Failed to create booking"
	}
}
