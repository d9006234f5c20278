package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `server:
  listen_addr: ":8080"
  allowed_origins:
    - "http://localhost:5173"

database:
  host: localhost
  port: 15432
  user: user
  password: pass
  name: leave
  ssl_mode: disable
  max_open_conns: 10
  max_idle_conns: 5
  conn_max_lifetime: "15m"
  conn_max_idle_time: "5m"

auth:
  jwt_secret: "test-secret"
  token_ttl: "12h"
  bcrypt_cost: 8

leave:
  default_total_days: 25
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("unexpected listen addr: %s", cfg.Server.ListenAddr)
	}

	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected allowed origins: %v", cfg.Server.AllowedOrigins)
	}

	if cfg.Database.ConnMaxLifetime != 15*time.Minute {
		t.Errorf("expected ConnMaxLifetime 15m, got %v", cfg.Database.ConnMaxLifetime)
	}

	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("expected TokenTTL 12h, got %v", cfg.Auth.TokenTTL)
	}

	if cfg.Auth.BcryptCost != 8 {
		t.Errorf("expected BcryptCost 8, got %d", cfg.Auth.BcryptCost)
	}

	if cfg.Leave.DefaultTotalDays != 25 {
		t.Errorf("expected DefaultTotalDays 25, got %d", cfg.Leave.DefaultTotalDays)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `server:
  listen_addr: ":8080"

database:
  host: localhost
  port: 15432
  user: user
  password: pass
  name: leave

auth:
  jwt_secret: "test-secret"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("expected default TokenTTL 24h, got %v", cfg.Auth.TokenTTL)
	}

	if cfg.Auth.BcryptCost != 10 {
		t.Errorf("expected default BcryptCost 10, got %d", cfg.Auth.BcryptCost)
	}

	if cfg.Leave.DefaultTotalDays != 30 {
		t.Errorf("expected default DefaultTotalDays 30, got %d", cfg.Leave.DefaultTotalDays)
	}

	if cfg.Database.SSLMode != "disable" {
		t.Errorf("expected default ssl mode disable, got %s", cfg.Database.SSLMode)
	}
}

func TestLoad_MissingField(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing server":     "database:\n  host: localhost\n  port: 5432\n  user: u\n  password: p\n  name: n\nauth:\n  jwt_secret: s\n",
		"missing database":   "server:\n  listen_addr: \":8080\"\nauth:\n  jwt_secret: s\n",
		"missing jwt secret": "server:\n  listen_addr: \":8080\"\ndatabase:\n  host: localhost\n  port: 5432\n  user: u\n  password: p\n  name: n\n",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, content)
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `server:
  listen_addr: ":8080"

database:
  host: localhost
  port: 5432
  user: u
  password: p
  name: n

auth:
  jwt_secret: s
  token_ttl: "not-a-duration"
`)

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestDSN(t *testing.T) {
	t.Parallel()

	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", Name: "leave", SSLMode: "disable"}
	want := "postgres://app:secret@db:5432/leave?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("unexpected DSN: %s", got)
	}
}
