package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/corebank/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.CurrencyLocal != "BDT" {
		t.Fatalf("expected local currency BDT, got %s", cfg.CurrencyLocal)
	}

	if len(cfg.CurrencyAllowed) != 2 || cfg.CurrencyAllowed[0] != "BDT" {
		t.Fatalf("expected default allow-list, got %v", cfg.CurrencyAllowed)
	}

	if cfg.BatchLockTTL != 30*time.Minute {
		t.Fatalf("expected batch lock TTL 30m, got %s", cfg.BatchLockTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("CURRENCY_ALLOWED", " usd, eur ,")
	t.Setenv("SYSTEM_DATE", "2025-01-15")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if len(cfg.CurrencyAllowed) != 2 || cfg.CurrencyAllowed[0] != "USD" || cfg.CurrencyAllowed[1] != "EUR" {
		t.Fatalf("expected normalised allow-list [USD EUR], got %v", cfg.CurrencyAllowed)
	}

	if cfg.SystemDate != "2025-01-15" {
		t.Fatalf("expected system date override, got %s", cfg.SystemDate)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("EOD_ADMIN_USER=SUPERVISOR\nHTTP_PORT=7070\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("HTTP_PORT", "9191")
	t.Cleanup(func() { _ = os.Unsetenv("EOD_ADMIN_USER") })

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.EODAdminUser != "SUPERVISOR" {
		t.Fatalf("expected admin user from .env, got %s", cfg.EODAdminUser)
	}

	if cfg.HTTPPort != "9191" {
		t.Fatalf("expected environment to win over .env, got %s", cfg.HTTPPort)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid duration", "HTTP_READ_TIMEOUT", "not-a-duration"},
		{"unknown local currency", "CURRENCY_LOCAL", "XXQ"},
		{"unknown allowed currency", "CURRENCY_ALLOWED", "USD,ZZZ"},
		{"bad system date", "SYSTEM_DATE", "15/01/2025"},
		{"zero divisor", "INTEREST_DEFAULT_DIVISOR", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
