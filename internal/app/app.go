package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	grpcapp "github.com/FANATBEBRbl/booking-app/internal/app/grpc"
	"github.com/FANATBEBRbl/booking-app/internal/config"
	"github.com/FANATBEBRbl/booking-app/internal/http-server/router"
	"github.com/FANATBEBRbl/booking-app/internal/lib/keylock"
	"github.com/FANATBEBRbl/booking-app/internal/services/auth"
	"github.com/FANATBEBRbl/booking-app/internal/services/booking"
	"github.com/FANATBEBRbl/booking-app/internal/services/rooms"
	"github.com/FANATBEBRbl/booking-app/internal/storage/memory"
	"github.com/FANATBEBRbl/booking-app/internal/storage/postgres"
	"github.com/FANATBEBRbl/booking-app/internal/storage/redis"
)

// Repository is everything the services need from a storage backend.
type Repository interface {
	auth.UserSaver
	auth.UserProvider
	rooms.Storage
	booking.Storage
	Close()
}

type App struct {
	log     *slog.Logger
	HTTPSrv *http.Server
	GRPCSrv *grpcapp.App
	Rooms   *rooms.Service
	closers []func()
}

// New opens storage, picks the slot locker and builds both servers.
// GRPCSrv is nil when grpc.port is 0.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	a := &App{log: log}

	repo, err := OpenStorage(ctx, log, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a.closers = append(a.closers, repo.Close)

	locker, err := a.newLocker(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	loc, err := cfg.LoadLocation()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authService := auth.New(log, repo, repo, auth.Options{
		Secret:               cfg.AppSecret,
		TokenTTL:             cfg.TokenTTL,
		AdminEmails:          cfg.Auth.AdminEmails,
		AllowDuplicateEmails: cfg.Auth.AllowDuplicateEmails,
	})
	a.Rooms = rooms.New(log, repo)
	bookingService := booking.NewService(log, repo, locker, booking.WithLocation(loc))

	a.HTTPSrv = &http.Server{
		Addr: cfg.HTTPServer.Address,
		Handler: router.New(log, router.Deps{
			Auth:        authService,
			Rooms:       a.Rooms,
			Bookings:    bookingService,
			CORSOrigins: cfg.HTTPServer.CORSOrigins,
		}),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if cfg.GRPC.Port != 0 {
		a.GRPCSrv = grpcapp.New(log, authService, cfg.GRPC.Port, cfg.GRPC.Timeout)
	}

	return a, nil
}

// OpenStorage connects the configured backend. Postgres is migrated on open.
func OpenStorage(ctx context.Context, log *slog.Logger, cfg *config.Config) (Repository, error) {
	const op = "app.OpenStorage"

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn("using in-memory storage, data is lost on restart")

		return memory.New(), nil
	case config.StoragePostgres:
		repo, err := postgres.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return repo, nil
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}
}

func (a *App) newLocker(ctx context.Context, cfg *config.Config) (booking.SlotLocker, error) {
	if !cfg.Redis.Enabled {
		a.log.Info("redis disabled, slot locks are process-local")

		return keylock.New(), nil
	}

	repo, err := redis.New(ctx, cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, redis.LockOptions{
		TTL:            cfg.Redis.LockTTL,
		AcquireTimeout: cfg.Redis.AcquireTimeout,
		RetryInterval:  cfg.Redis.RetryInterval,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, repo.Close)

	return repo, nil
}

// Run serves HTTP, and gRPC when enabled, until one of them fails or is stopped.
func (a *App) Run() error {
	errCh := make(chan error, 2)

	if a.GRPCSrv != nil {
		go func() {
			errCh <- a.GRPCSrv.Run()
		}()
	}

	go func() {
		a.log.Info("HTTP server starting", slog.String("addr", a.HTTPSrv.Addr))

		if err := a.HTTPSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("app.Run: %w", err)
			return
		}
		errCh <- nil
	}()

	return <-errCh
}

// Stop shuts both servers down and releases storage.
func (a *App) Stop(ctx context.Context) error {
	if a.GRPCSrv != nil {
		a.GRPCSrv.Stop()
	}

	err := a.HTTPSrv.Shutdown(ctx)

	a.Close()

	return err
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
