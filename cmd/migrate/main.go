package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/GoSim-25-26J-441/solar-projects-backend/config"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/logging"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/storage/postgres"
)

func main() {
	if len(os.Args) < 2 {
		slog.Error("usage: migrate <up|down|status|version|redo|reset> [args]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.App.Environment, cfg.App.LogLevel)

	if cfg.Database.Driver != config.DriverPostgres {
		logger.Error("migrations need STORE_DRIVER=postgres", "driver", cfg.Database.Driver)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	command := os.Args[1]
	if err := postgres.RunCommand(ctx, db.SQL, command, os.Args[2:]...); err != nil {
		logger.Error("migrate", "command", command, "error", err)
		db.Close()
		os.Exit(1)
	}
	logger.Info("migrate done", "command", command)
}
