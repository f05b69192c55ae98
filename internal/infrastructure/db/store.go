// Package db opens the configured user store.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/ports"
	"github.com/firstapp/accounts/internal/infrastructure/db/mongo"
	"github.com/firstapp/accounts/internal/infrastructure/db/postgres"
	"github.com/firstapp/accounts/internal/pkg/config"
)

// UserStore is a user repository that can report its reachability.
type UserStore interface {
	ports.UserRepository
	Ping(ctx context.Context) error
}

// CloseFunc releases the store's connections.
type CloseFunc func(ctx context.Context) error

// Open connects to the store named by cfg.StoreDriver and prepares its
// schema: the unique email index for Mongo, the embedded migrations for
// Postgres.
func Open(ctx context.Context, cfg *config.BaseConfig, log zerolog.Logger) (UserStore, CloseFunc, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "accounts",
		})
		if err != nil {
			return nil, nil, err
		}
		repo := mongo.NewUserRepository(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
		return repo, client.Disconnect, nil

	case config.DriverPostgres:
		if err := postgres.RunMigrations(cfg.Postgres.URL); err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("connected to postgres")
		return postgres.NewUserRepository(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
