package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GoSim-25-26J-441/solar-projects-backend/config"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/repository"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/projects/service"
	"github.com/GoSim-25-26J-441/solar-projects-backend/internal/storage/postgres"
)

// Store is the opened project store plus whatever backs it. Pool is nil for
// the in-memory driver.
type Store struct {
	Projects service.Store
	Pool     *pgxpool.Pool
	close    func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore opens the store selected by STORE_DRIVER, running migrations
// first when the postgres driver is configured to.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory project store; data is lost on restart")
		return &Store{Projects: repository.NewMemoryStore()}, nil

	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, db.SQL); err != nil {
				db.Close()
				return nil, err
			}
			slog.Info("database migrations applied")
		}
		return &Store{
			Projects: repository.NewPostgresStore(db.SQL),
			Pool:     db.Pool,
			close:    db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
