package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logintest/login-api/internal/core/domain"
	"github.com/logintest/login-api/internal/pkg/config"
)

func baseConfig(driver string) *config.Config {
	cfg := &config.Config{}
	cfg.Store.Driver = driver
	cfg.Store.Timeout = 2 * time.Second
	cfg.Store.EnsureSchema = true
	return cfg
}

func TestOpen_SQLite(t *testing.T) {
	cfg := baseConfig(config.DriverSQLite)
	cfg.SQLite.Path = ":memory:"

	store, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	assert.Equal(t, config.DriverSQLite, store.Driver)

	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, store.Repo.Create(ctx, &domain.Credential{Email: "a@b.co", Password: "pw", CreatedAt: now, UpdatedAt: now}))
	exists, err := store.Repo.Exists(ctx, "a@b.co")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(config.DriverRedis)
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.KeyPrefix = "test:"

	store, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	now := time.Now().UTC()
	require.NoError(t, store.Repo.Create(context.Background(), &domain.Credential{Email: "a@b.co", Password: "pw", CreatedAt: now, UpdatedAt: now}))
	assert.True(t, mr.Exists("test:a@b.co"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), baseConfig("cassandra"), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestOpen_RedisUnreachable(t *testing.T) {
	cfg := baseConfig(config.DriverRedis)
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Store.Timeout = 200 * time.Millisecond

	_, err := Open(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestStore_CloseNil(t *testing.T) {
	var s *Store
	assert.NoError(t, s.Close(context.Background()))
}
