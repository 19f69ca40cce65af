package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_SECRET", "SEAT_TOKEN_TTL", "MAX_GAMES", "CORS_ORIGINS", "LOG_LEVEL", "LOG_FILE", "DEV"} {
		// Setenv restores the original value when the test ends.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8009" {
		t.Errorf("expected port 8009, got %q", cfg.Port)
	}
	if cfg.SeatTokenTTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.SeatTokenTTL)
	}
	if cfg.MaxGames != 1000 {
		t.Errorf("expected 1000 games, got %d", cfg.MaxGames)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.CORSOrigins)
	}
	if cfg.Addr() != ":8009" {
		t.Errorf("expected :8009, got %q", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SEAT_TOKEN_TTL", "90m")
	t.Setenv("MAX_GAMES", "3")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("DEV", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.SeatTokenTTL != 90*time.Minute || cfg.MaxGames != 3 || !cfg.Dev {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %q", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct{ key, value string }{
		{"MAX_GAMES", "0"},
		{"MAX_GAMES", "lots"},
		{"SEAT_TOKEN_TTL", "-1h"},
		{"DEV", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
