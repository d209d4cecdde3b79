package application

import (
	"context"
	"fmt"

	"flipper/internal/config"
	"flipper/internal/infrastructure/persistence"
	"flipper/migrations"
	"flipper/pkg/application/connectors"
)

// storage is the opened backend plus what the probe and shutdown need from it.
type storage struct {
	store persistence.KeyValueStore
	ready func(ctx context.Context) error
	close func(ctx context.Context)
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		conn := &connectors.Redis{
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			Address:            cfg.Redis.Address,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		client := conn.Client(ctx)

		return storage{
			store: persistence.NewRedisStore(client),
			ready: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close: conn.Close,
		}, nil

	case config.StoragePostgres:
		conn := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		db := conn.Client(ctx)

		if err := migrations.Apply(ctx, db); err != nil {
			conn.Close(ctx)
			return storage{}, fmt.Errorf("migrations.Apply: %w", err)
		}

		return storage{
			store: persistence.NewSQLStore(db),
			ready: db.PingContext,
			close: conn.Close,
		}, nil

	case config.StorageSQLite:
		conn := &connectors.SQLite{Path: cfg.SQLite.Path}
		db := conn.Client(ctx)

		if err := migrations.Apply(ctx, db); err != nil {
			conn.Close(ctx)
			return storage{}, fmt.Errorf("migrations.Apply: %w", err)
		}

		return storage{
			store: persistence.NewSQLStore(db),
			ready: db.PingContext,
			close: conn.Close,
		}, nil

	default:
		return storage{
			store: persistence.NewMemoryStore(),
			ready: func(context.Context) error { return nil },
			close: func(context.Context) {},
		}, nil
	}
}
