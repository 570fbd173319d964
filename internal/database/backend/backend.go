// Package backend opens the store named in the configuration.
package backend

import (
	"context"
	"fmt"

	"serwer-dostepu/internal/config"
	"serwer-dostepu/internal/database"
	"serwer-dostepu/internal/database/memory"
	"serwer-dostepu/internal/database/sqlite"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Backend is a store that fixtures can also be written into.
type Backend interface {
	database.Store
	database.Seeder
}

// Open returns the configured backend and a function releasing it. The
// memory driver is seeded from the snapshot fixture, when one is set.
func Open(ctx context.Context, cfg *config.Config) (Backend, func(), error) {
	switch cfg.DB.Driver {
	case DriverPostgres, "":
		pool, err := pgxpool.New(ctx, cfg.DB.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		return database.NewStore(pool), pool.Close, nil

	case DriverSQLite:
		source := cfg.DB.Source
		if source == "" {
			source = ":memory:"
		}
		s, err := sqlite.Open(ctx, source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return s, func() { s.Close() }, nil

	case DriverMemory:
		if cfg.Snapshot.Fixture == "" {
			return memory.New(), func() {}, nil
		}
		f, err := database.LoadFixture(cfg.Snapshot.Fixture)
		if err != nil {
			return nil, nil, err
		}
		s, err := memory.FromFixture(ctx, f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load fixture %s: %w", cfg.Snapshot.Fixture, err)
		}
		return s, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
}
