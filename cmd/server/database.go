package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/devlink-api/internal/config"
	"github.com/phrazzld/devlink-api/internal/platform/memory"
	"github.com/phrazzld/devlink-api/internal/platform/mongodb"
	"github.com/phrazzld/devlink-api/internal/platform/postgres"
	"github.com/phrazzld/devlink-api/internal/store"
)

// storage bundles the stores of the configured driver with the function
// that releases its connection.
type storage struct {
	users    store.UserStore
	profiles store.ProfileStore
	posts    store.PostStore
	close    func(ctx context.Context) error
}

// setupStorage connects to the configured driver and prepares its schema.
func setupStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*storage, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on restart")
		return &storage{
			users:    memory.NewUserStore(),
			profiles: memory.NewProfileStore(),
			posts:    memory.NewPostStore(),
			close:    func(context.Context) error { return nil },
		}, nil

	case "mongo":
		client, db, err := mongodb.Connect(ctx, cfg.URL, cfg.Name, logger)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &storage{
			users:    mongodb.NewUserStore(db),
			profiles: mongodb.NewProfileStore(db),
			posts:    mongodb.NewPostStore(db),
			close:    client.Disconnect,
		}, nil

	case "postgres":
		db, err := postgres.Open(ctx, cfg.URL, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &storage{
			users:    postgres.NewPostgresUserStore(db, logger),
			profiles: postgres.NewPostgresProfileStore(db, logger),
			posts:    postgres.NewPostgresPostStore(db, logger),
			close:    func(context.Context) error { return db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
