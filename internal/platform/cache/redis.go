// Package cache provides the Redis connection configured by REDIS_URL.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/maigie/maigie-api/internal/health"
	"github.com/redis/go-redis/v9"
)

// CacheType is reported by HealthCheck.
const CacheType = "redis"

const (
	connectTimeout = 5 * time.Second
	healthTimeout  = 2 * time.Second
)

// Redis manages the Redis client. It is safe for concurrent use.
type Redis struct {
	url    string
	logger *slog.Logger

	mu     sync.RWMutex
	client *redis.Client
}

// NewRedis creates a disconnected Redis for the given URL.
func NewRedis(url string, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{
		url:    url,
		logger: logger.With("component", "cache"),
	}
}

// Connect creates the client and verifies it with a PING. Calling Connect on
// a connected instance does nothing.
func (r *Redis) Connect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return nil
	}

	opts, err := redis.ParseURL(r.url)
	if err != nil {
		return fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	r.client = client
	r.logger.InfoContext(ctx, "cache connection established", "addr", opts.Addr, "db", opts.DB)
	return nil
}

// Disconnect closes the client. Calling Disconnect on a disconnected
// instance does nothing.
func (r *Redis) Disconnect(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}

	err := r.client.Close()
	r.client = nil
	r.logger.InfoContext(ctx, "cache connection closed")
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}

// HealthCheck pings Redis.
func (r *Redis) HealthCheck(ctx context.Context) health.Report {
	r.mu.RLock()
	client := r.client
	r.mu.RUnlock()

	if client == nil {
		return health.Report{Status: health.StatusDisconnected, Type: CacheType}
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		r.logger.WarnContext(ctx, "cache health check failed", "error", err)
		return health.Report{Status: health.StatusUnhealthy, Type: CacheType}
	}
	return health.Report{Status: health.StatusHealthy, Type: CacheType}
}
