package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/solar-projects-backend/config"
)

// DSN returns the configured DSN, or a key/value DSN assembled from the
// individual DB_* settings when none is given.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)
}
