package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("Store.Driver = %q, want sqlite", cfg.Store.Driver)
	}
	if cfg.Store.Timeout != 5*time.Second {
		t.Errorf("Store.Timeout = %v", cfg.Store.Timeout)
	}
	if !cfg.Store.EnsureSchema {
		t.Error("Store.EnsureSchema should default to true")
	}
	if cfg.SQLite.Path != "login.db" {
		t.Errorf("SQLite.Path = %q", cfg.SQLite.Path)
	}
	if cfg.Mongo.Database != "login_data" {
		t.Errorf("Mongo.Database = %q", cfg.Mongo.Database)
	}
	if cfg.Redis.KeyPrefix != "credential:" {
		t.Errorf("Redis.KeyPrefix = %q", cfg.Redis.KeyPrefix)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.Seed.Email != "" || cfg.Seed.Password != "" {
		t.Errorf("seed should be empty, got %+v", cfg.Seed)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":               "9090",
		"STORE_DRIVER":       " Redis ",
		"REDIS_ADDR":         "cache:6379",
		"REDIS_DB":           "3",
		"CORS_ALLOW_ORIGINS": "http://a.test,http://b.test",
		"SEED_EMAIL":         "test@example.com",
		"SEED_PASSWORD":      "Password123!",
		"LOG_PRETTY":         "true",
		"POSTGRES_MAX_CONNS": "4",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}

	if cfg.Store.Driver != DriverRedis {
		t.Errorf("Store.Driver = %q, want redis", cfg.Store.Driver)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 3 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.LogPretty {
		t.Error("LogPretty should be true")
	}
	if cfg.Postgres.MaxConns != 4 {
		t.Errorf("Postgres.MaxConns = %d", cfg.Postgres.MaxConns)
	}
	if cfg.Seed.Email != "test@example.com" {
		t.Errorf("Seed.Email = %q", cfg.Seed.Email)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "cassandra"}, "unsupported STORE_DRIVER"},
		{"seed email only", map[string]string{"SEED_EMAIL": "a@b.co"}, "SEED_EMAIL and SEED_PASSWORD"},
		{"zero timeout", map[string]string{"STORE_TIMEOUT": "0s"}, "STORE_TIMEOUT"},
		{"bad duration", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}, "failed to load configuration"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tc.env))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}
