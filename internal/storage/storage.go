package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/faktur/internal/config"
	"github.com/MrJamesThe3rd/faktur/internal/database"
	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/history/store"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the history backend selected by cfg.Storage.Driver. The returned
// Closer releases the underlying connection and is never nil on success.
func Open(ctx context.Context, cfg *config.Config) (history.Repository, io.Closer, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		slog.Info("using file storage", "dir", cfg.Storage.Dir)

		return store.NewFile(cfg.Storage.Dir, cfg.Storage.Key), nopCloser{}, nil
	case config.DriverMemory:
		return store.NewMemory(), nopCloser{}, nil
	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}

		repo := store.NewPostgres(db, cfg.Storage.Key)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()

			return nil, nil, fmt.Errorf("preparing schema: %w", err)
		}

		return repo, db, nil
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()

			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}

		return store.NewRedis(client, cfg.Storage.Key), client, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
