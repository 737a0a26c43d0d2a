// @title           Solar Projects API
// @version         1.0.0
// @description     Role-scoped CRUD for solar-installation service projects.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoSim-25-26J-441/solar-projects-backend/config"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, &cfg.Database)
	if err != nil {
		logger.Error("open store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	deps := bootstrap.RouterDeps{
		ServiceName: cfg.App.ServiceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.Origins(),
		Store:       store.Projects,
	}
	if store.Pool != nil {
		deps.DB = store.Pool
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      bootstrap.BuildRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening",
			"addr", server.Addr,
			"env", cfg.App.Environment,
			"driver", cfg.Database.Driver,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
