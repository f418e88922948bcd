// Package guard resolves the caller of a request from its bearer token.
package guard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	resp "github.com/FANATBEBRbl/booking-app/internal/lib/api/response"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/services/auth"

	"github.com/go-chi/chi/middleware"
)

var errNoToken = errors.New("missing bearer token")

type Identifier interface {
	Identify(ctx context.Context, token string) (models.Caller, error)
}

// New returns middleware that rejects the request with 401 unless the
// bearer token resolves to a stored user.
func New(log *slog.Logger, identifier Identifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := log.With(
				slog.String("op", "middleware.guard"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			caller, err := Authenticate(r, identifier)
			if err != nil {
				if errors.Is(err, errNoToken) || errors.Is(err, auth.ErrUnauthenticated) {
					log.Info("unauthenticated request", sl.Err(err))

					resp.WriteError(w, r, http.StatusUnauthorized, "Unauthorized")

					return
				}

				log.Error("failed to identify caller", sl.Err(err))

				resp.WriteError(w, r, http.StatusInternalServerError, "Failed to identify caller")

				return
			}

			ctx := context.WithValue(r.Context(), models.CallerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate extracts the bearer token from r and resolves it.
func Authenticate(r *http.Request, identifier Identifier) (models.Caller, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return models.Caller{}, errNoToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return models.Caller{}, errNoToken
	}

	return identifier.Identify(r.Context(), strings.TrimSpace(parts[1]))
}

// CallerFromContext returns the caller stored by the guard middleware.
func CallerFromContext(ctx context.Context) (models.Caller, bool) {
	caller, ok := ctx.Value(models.CallerKey).(models.Caller)
	return caller, ok
}
