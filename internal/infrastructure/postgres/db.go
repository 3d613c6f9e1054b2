package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is a single-slot connection pool: at most one store connection is
// open for the whole process. Every repository operation acquires the
// slot, issues its statements, and releases it before returning, error
// paths included. Composite service operations therefore sequence whole
// repository calls instead of nesting acquisitions; a nested acquire
// would block on the slot rather than corrupt anything.
type DB struct {
	pool *pgxpool.Pool
}

// Connect opens the single-slot pool and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 1
	cfg.MinConns = 0
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DB{pool: pool}, nil
}

// Acquire blocks until the slot is free and returns the connection.
// Callers must Release it on all paths.
func (db *DB) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	return db.pool.Acquire(ctx)
}

func (db *DB) Close() {
	db.pool.Close()
}
