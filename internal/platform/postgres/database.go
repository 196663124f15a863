package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/maigie/maigie-api/internal/health"
)

// DatabaseType is reported by HealthCheck.
const DatabaseType = "postgresql"

// Connection pool defaults.
const (
	maxConns        = 10
	maxConnLifetime = 5 * time.Minute
	connectTimeout  = 5 * time.Second
	healthTimeout   = 2 * time.Second
)

// ErrNotConnected is returned by operations that need an open connection.
var ErrNotConnected = errors.New("database is not connected")

// Database manages the PostgreSQL connection pool. The zero value is not
// usable; create instances with NewDatabase. It is safe for concurrent use.
type Database struct {
	url    string
	logger *slog.Logger

	mu    sync.RWMutex
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// NewDatabase creates a disconnected Database for the given connection string.
func NewDatabase(url string, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.Default()
	}
	return &Database{
		url:    url,
		logger: logger.With("component", "database"),
	}
}

// Connect opens the pool and verifies it with a ping. Calling Connect on a
// connected Database does nothing.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pool != nil {
		return nil
	}

	cfg, err := pgxpool.ParseConfig(d.url)
	if err != nil {
		return fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MaxConnLifetime = maxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	d.pool = pool
	d.logger.InfoContext(ctx, "database connection established",
		"host", cfg.ConnConfig.Host,
		"database", cfg.ConnConfig.Database,
		"max_conns", maxConns)
	return nil
}

// Disconnect closes the pool. Calling Disconnect on a disconnected Database
// does nothing.
func (d *Database) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pool == nil {
		return nil
	}

	var err error
	if d.sqlDB != nil {
		err = d.sqlDB.Close()
		d.sqlDB = nil
	}
	d.pool.Close()
	d.pool = nil

	d.logger.InfoContext(ctx, "database connection closed")
	if err != nil {
		return fmt.Errorf("failed to close database/sql handle: %w", err)
	}
	return nil
}

// HealthCheck pings the database.
func (d *Database) HealthCheck(ctx context.Context) health.Report {
	d.mu.RLock()
	pool := d.pool
	d.mu.RUnlock()

	if pool == nil {
		return health.Report{Status: health.StatusDisconnected, Type: DatabaseType}
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		d.logger.WarnContext(ctx, "database health check failed", "error", err)
		return health.Report{Status: health.StatusUnhealthy, Type: DatabaseType}
	}
	return health.Report{Status: health.StatusHealthy, Type: DatabaseType}
}

// SQLDB returns a database/sql handle backed by the pool, for libraries that
// need one. The handle is closed by Disconnect.
func (d *Database) SQLDB() (*sql.DB, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pool == nil {
		return nil, ErrNotConnected
	}
	if d.sqlDB == nil {
		d.sqlDB = stdlib.OpenDBFromPool(d.pool)
	}
	return d.sqlDB, nil
}
