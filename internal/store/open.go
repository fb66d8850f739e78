package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Open picks the postgres store when a database URL is set, the file store
// otherwise. The returned func releases whatever the store holds.
func Open(ctx context.Context, databaseURL, dataDir string) (Store, func(), error) {
	if databaseURL == "" {
		fs, err := NewFileStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return fs, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	pg, err := NewPostgres(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pg, pool.Close, nil
}
