package login

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
}

type Response struct {
	Token string `json:"token"`
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

func New(log *slog.Logger, authenticator Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

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

		token, err := authenticator.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUserNotFound):
				resp.WriteError(w, r, http.StatusNotFound, "User not found")
			case errors.Is(err, auth.ErrInvalidCredentials):
				resp.WriteError(w, r, http.StatusUnauthorized, "Invalid password")
			default:
				log.Error("failed to login", sl.Err(err))

				resp.WriteError(w, r, http.StatusInternalServerError, "Failed to login")
			}

			return
		}

		render.JSON(w, r, Response{Token: token})
	}
}
