// Package db opens the credential store selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/logintest/login-api/internal/core/ports"
	"github.com/logintest/login-api/internal/infrastructure/db/mongo"
	"github.com/logintest/login-api/internal/infrastructure/db/postgres"
	"github.com/logintest/login-api/internal/infrastructure/db/redis"
	"github.com/logintest/login-api/internal/infrastructure/db/sqlite"
	"github.com/logintest/login-api/internal/pkg/config"
)

// Store bundles an open repository with the function that releases its
// underlying connection.
type Store struct {
	Repo   ports.CredentialRepository
	Driver string
	close  func(context.Context) error
}

// Close releases the store's connection. Safe on a nil Store.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend named by cfg.Store.Driver and, when
// cfg.Store.EnsureSchema is set, creates the table or index it needs.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	store, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", store.Driver).Msg("credential store connected")

	if cfg.Store.EnsureSchema {
		schemaCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
		defer cancel()
		if err := store.Repo.EnsureSchema(schemaCtx); err != nil {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("ensure %s schema: %w", store.Driver, err)
		}
		log.Debug().Str("driver", store.Driver).Msg("credential schema ensured")
	}
	return store, nil
}

func connect(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		conn, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:   sqlite.NewCredentialRepository(conn, cfg.Store.Timeout),
			Driver: config.DriverSQLite,
			close:  func(context.Context) error { return conn.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{
			DSN:      cfg.Postgres.DSN,
			MaxConns: cfg.Postgres.MaxConns,
			Timeout:  cfg.Store.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:   postgres.NewCredentialRepository(pool, cfg.Store.Timeout),
			Driver: config.DriverPostgres,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Store.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:   mongo.NewCredentialRepository(database, cfg.Store.Timeout),
			Driver: config.DriverMongo,
			close:  client.Disconnect,
		}, nil

	case config.DriverRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Store.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return &Store{
			Repo:   redis.NewCredentialRepository(client, cfg.Redis.KeyPrefix),
			Driver: config.DriverRedis,
			close:  func(context.Context) error { return client.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}
