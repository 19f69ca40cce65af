package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port         string        `env:"PORT"           envDefault:"8009"`
	JWTSecret    string        `env:"JWT_SECRET"     envDefault:"dev-secret-change-me"`
	SeatTokenTTL time.Duration `env:"SEAT_TOKEN_TTL" envDefault:"24h"`
	MaxGames     int           `env:"MAX_GAMES"      envDefault:"1000"`
	CORSOrigins  []string      `env:"CORS_ORIGINS"   envDefault:"*" envSeparator:","`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	Dev      bool   `env:"DEV"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxGames <= 0 {
		return nil, fmt.Errorf("MAX_GAMES must be positive, got %d", cfg.MaxGames)
	}
	if cfg.SeatTokenTTL <= 0 {
		return nil, fmt.Errorf("SEAT_TOKEN_TTL must be positive, got %s", cfg.SeatTokenTTL)
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
