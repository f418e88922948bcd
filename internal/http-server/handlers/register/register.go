package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	resp "github.com/FANATBEBRbl/booking-app/internal/lib/api/response"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/services/auth"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
}

type UserRegistrar interface {
	RegisterNewUser(ctx context.Context, email, password, name string) (int64, error)
}

func New(log *slog.Logger, registrar UserRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

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

		id, err := registrar.RegisterNewUser(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUserExists):
				resp.WriteError(w, r, http.StatusConflict, "User already exists")
			case errors.Is(err, auth.ErrEmptyCredentials):
				resp.WriteError(w, r, http.StatusBadRequest, "Email and password are required")
			default:
				log.Error("failed to register user", sl.Err(err))

				resp.WriteError(w, r, http.StatusInternalServerError, "Failed to register user")
			}

			return
		}

		log.Info("user registered", slog.Int64("user_id", id))

		render.Status(r, http.StatusCreated)
		render.PlainText(w, r, "User created")
	}
}
