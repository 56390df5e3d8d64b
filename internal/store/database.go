/**
 * @description
 * This file owns the PostgreSQL connection pool. The pool is opened once at
 * startup and closed once at shutdown by the lifecycle manager; request
 * handlers never touch it directly.
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotOpen is returned when a resource is used before Open succeeded.
var ErrNotOpen = errors.New("resource is not open")

// PoolSettings bounds the pgx connection pool.
type PoolSettings struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DefaultPoolSettings mirrors the lifetimes used across the platform services.
func DefaultPoolSettings() PoolSettings {
	return PoolSettings{
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
	}
}

// Database is the PostgreSQL collaborator managed by the lifecycle.
type Database struct {
	url      string
	settings PoolSettings

	mu   sync.RWMutex
	pool *pgxpool.Pool
}

// NewDatabase creates an unopened database collaborator.
func NewDatabase(url string, settings PoolSettings) *Database {
	return &Database{url: url, settings: settings}
}

// Name identifies the resource in logs and readiness checks.
func (d *Database) Name() string { return "database" }

// Open parses the URL, builds the pool and verifies connectivity.
func (d *Database) Open(ctx context.Context) error {
	cfg, err := d.poolConfig()
	if err != nil {
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	d.mu.Lock()
	d.pool = pool
	d.mu.Unlock()
	return nil
}

func (d *Database) poolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(d.url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	cfg.MaxConns = d.settings.MaxConns
	cfg.MinConns = d.settings.MinConns
	if d.settings.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = d.settings.MaxConnLifetime
	}
	if d.settings.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = d.settings.MaxConnIdleTime
	}

	// Simple protocol keeps the pool usable behind PgBouncer transaction pooling.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	return cfg, nil
}

// Ping checks that the pool can still reach the server.
func (d *Database) Ping(ctx context.Context) error {
	d.mu.RLock()
	pool := d.pool
	d.mu.RUnlock()
	if pool == nil {
		return ErrNotOpen
	}
	return pool.Ping(ctx)
}

// Close releases every pooled connection. Closing an unopened database is a no-op.
func (d *Database) Close(ctx context.Context) error {
	d.mu.Lock()
	pool := d.pool
	d.pool = nil
	d.mu.Unlock()
	if pool == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		pool.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("closing database pool: %w", ctx.Err())
	}
}
