package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/railway-blog-service/internal/config"
	"github.com/maxviazov/railway-blog-service/internal/repository"
	"github.com/maxviazov/railway-blog-service/internal/repository/postgres"
	"github.com/maxviazov/railway-blog-service/internal/repository/sqlite"
)

// backend is an opened store plus the schema migration of its driver.
type backend struct {
	store   *repository.Store
	migrate func(ctx context.Context) error
}

// openBackend connects to the configured driver.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:   postgres.NewStore(pool),
			migrate: func(ctx context.Context) error { return postgres.Migrate(ctx, pool, log) },
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path, log)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:   sqlite.NewStore(db),
			migrate: func(ctx context.Context) error { return sqlite.Migrate(ctx, db, log) },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
