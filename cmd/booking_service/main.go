package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FANATBEBRbl/booking-app/internal/app"
	"github.com/FANATBEBRbl/booking-app/internal/config"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"

	"github.com/joho/godotenv"
)

func main() {
	// .env не обязателен, переменные могут прийти из окружения
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env)

	log.Info("starting booking service", slog.String("env", cfg.Env))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Error("failed to init application", sl.Err(err))
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sign := <-stop:
		log.Info("stopping application", slog.String("signal", sign.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", sl.Err(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := application.Stop(shutdownCtx); err != nil {
		log.Error("failed to shut down gracefully", sl.Err(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}
