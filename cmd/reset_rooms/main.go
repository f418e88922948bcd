// reset_rooms deletes every room and optionally seeds new ones from a YAML file:
//
//	rooms:
//	  - name: "101"
//	    description: "Big meeting room"
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/FANATBEBRbl/booking-app/internal/app"
	"github.com/FANATBEBRbl/booking-app/internal/config"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger"
	"github.com/FANATBEBRbl/booking-app/internal/lib/logger/sl"
	"github.com/FANATBEBRbl/booking-app/internal/models"
	"github.com/FANATBEBRbl/booking-app/internal/services/rooms"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Rooms []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"rooms"`
}

func main() {
	var seedPath string
	// флаг объявляется до MustLoad, который вызывает flag.Parse
	flag.StringVar(&seedPath, "seed", "", "path to a YAML file with rooms to insert")

	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env)

	if err := run(log, cfg, seedPath); err != nil {
		log.Error("failed to reset rooms", sl.Err(err))
		os.Exit(1)
	}

	fmt.Println("Rooms have been reset.")
}

func run(log *slog.Logger, cfg *config.Config, seedPath string) error {
	const op = "reset_rooms.run"

	seed, err := loadSeed(seedPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := app.OpenStorage(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer repo.Close()

	created, err := rooms.New(log, repo).Reset(ctx, seed)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, r := range created {
		log.Info("room created", slog.Int64("id", r.ID), slog.String("name", r.Name))
	}

	return nil
}

func loadSeed(path string) ([]models.Room, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make([]models.Room, 0, len(f.Rooms))
	for _, r := range f.Rooms {
		out = append(out, models.Room{Name: r.Name, Description: r.Description})
	}

	return out, nil
}
