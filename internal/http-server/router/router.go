// Package router assembles the REST API.
package router

import (
	"log/slog"
	"net/http"

	createbooking "github.com/FANATBEBRbl/booking-app/internal/http-server/handlers/create_booking"
	createroom "github.com/FANATBEBRbl/booking-app/internal/http-server/handlers/create_room"
	deletebooking "github.com/FANATBEBRbl/booking-app/internal/http-server/handlers/delete_booking"
	listbookings "github.com/FANATBEBRbl/booking-app/internal/http-server/handlers/list_bookings"
	listrooms "github.com/FANATBEBRbl/booking-app/internal/http-server/handlers/list_rooms"
	"github.com/FANATBEBRbl/booking-app/internal/http-server/handlers/login"
	"github.com/FANATBEBRbl/booking-app/internal/http-server/handlers/register"
	"github.com/FANATBEBRbl/booking-app/internal/http-server/middleware/guard"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
)

type Auth interface {
	register.UserRegistrar
	login.Authenticator
	guard.Identifier
}

type Rooms interface {
	listrooms.RoomLister
	createroom.RoomCreator
}

type Bookings interface {
	listbookings.BookingLister
	createbooking.BookingCreator
	deletebooking.BookingDeleter
}

type Deps struct {
	Auth        Auth
	Rooms       Rooms
	Bookings    Bookings
	CORSOrigins []string
}

func New(log *slog.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireCaller := guard.New(log, deps.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", register.New(log, deps.Auth))
		r.Post("/auth/login", login.New(log, deps.Auth))

		r.Get("/rooms", listrooms.New(log, deps.Rooms))
		r.Get("/bookings", listbookings.New(log, deps.Bookings))

		r.Group(func(r chi.Router) {
			r.Use(requireCaller)

			r.Post("/rooms", createroom.New(log, deps.Rooms))
			r.Post("/bookings", createbooking.New(log, deps.Bookings))
			r.Delete("/bookings/{id}", deletebooking.New(log, deps.Bookings))
		})
	})

	return r
}
