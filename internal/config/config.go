package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all externally supplied settings for the service.
// Every value comes from the environment; the two JWT secrets are
// required and startup fails without them.
type Config struct {
	Port     string `env:"CONTACTS_PORT" envDefault:"8080"`
	DBPath   string `env:"CONTACTS_DB_PATH" envDefault:"contacts.db"`
	RedisURL string `env:"CONTACTS_REDIS_URL" envDefault:"redis://localhost:6379"`
	LogLevel string `env:"CONTACTS_LOG_LEVEL" envDefault:"info"`

	AccessSecret  string        `env:"CONTACTS_JWT_ACCESS_SECRET,notEmpty"`
	RefreshSecret string        `env:"CONTACTS_JWT_REFRESH_SECRET,notEmpty"`
	AccessTTL     time.Duration `env:"CONTACTS_ACCESS_TTL" envDefault:"1h"`
	RefreshTTL    time.Duration `env:"CONTACTS_REFRESH_TTL" envDefault:"168h"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, fmt.Errorf("access and refresh secrets must differ")
	}
	return cfg, nil
}
