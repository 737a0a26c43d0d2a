package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"3000"`
	CORSOrigin      string        `env:"CORS_ORIGIN" env-default:""`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig selects the store. DSN wins over the DB_HOST family of keys.
type DatabaseConfig struct {
	Driver         string `env:"STORE_DRIVER" env-default:"postgres"`
	DSN            string `env:"DB_DSN" env-default:""`
	Host           string `env:"DB_HOST" env-default:""`
	Port           int    `env:"DB_PORT" env-default:"5432"`
	User           string `env:"DB_USER" env-default:"postgres"`
	Password       string `env:"DB_PASSWORD" env-default:""`
	Name           string `env:"DB_NAME" env-default:"solar_projects"`
	SSLMode        string `env:"DB_SSLMODE" env-default:"disable"`
	MaxConns       int32  `env:"DB_MAX_CONNS" env-default:"10"`
	MinConns       int32  `env:"DB_MIN_CONNS" env-default:"2"`
	MigrateOnStart bool   `env:"DB_MIGRATE_ON_START" env-default:"true"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" env-default:"development"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	Version     string `env:"APP_VERSION" env-default:"1.0.0"`
	ServiceName string `env:"SERVICE_NAME" env-default:"solar-projects"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_DSN or DB_HOST is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.App.Environment)
	return env == "production" || env == "prod"
}

// Origins splits CORS_ORIGIN. An empty result means any origin.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigin, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			return nil
		}
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
