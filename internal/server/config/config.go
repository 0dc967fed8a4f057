// Package config loads the development server's settings from the
// environment into a typed struct.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration of the development server.
type Config struct {
	// Addr is the listen address.
	Addr string `env:"ADDR" envDefault:":3001"`

	// JWTSecret signs the bearer tokens issued at login.
	JWTSecret string `env:"JWT_SECRET" envDefault:"staffdesk-dev-secret"`
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// DatabaseDSN selects the PostgreSQL repository when set; the server
	// falls back to the seeded in-memory repository otherwise.
	DatabaseDSN string `env:"DATABASE_DSN"`

	// LoginRPS and LoginBurst throttle the login endpoint.
	LoginRPS   float64 `env:"LOGIN_RPS" envDefault:"5"`
	LoginBurst int     `env:"LOGIN_BURST" envDefault:"10"`

	// LogLevel sets the zap level ("debug", "info", ...).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses environment variables into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
