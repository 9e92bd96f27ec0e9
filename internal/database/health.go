package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker pings the backing stores for the health endpoint.
type Checker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewChecker creates a Checker.
func NewChecker(pool *pgxpool.Pool, rdb *redis.Client) *Checker {
	return &Checker{pool: pool, rdb: rdb}
}

// Check returns the status of each store, keyed by name. The error is
// non-nil if any store is unreachable.
func (c *Checker) Check(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"postgres": "ok", "redis": "ok"}
	var failed error
	if err := c.pool.Ping(ctx); err != nil {
		status["postgres"] = "down"
		failed = fmt.Errorf("postgres: %w", err)
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
		if failed == nil {
			failed = fmt.Errorf("redis: %w", err)
		}
	}
	return status, failed
}
