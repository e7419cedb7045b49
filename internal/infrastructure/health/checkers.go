package health

import (
	"context"
	"errors"

	"github.com/avatarctic/status-service/internal/core/ports"
)

var errCacheDown = errors.New("cache connection is not alive")

// pinger is satisfied by *db.Database.
type pinger interface {
	Ping(ctx context.Context) error
}

// connectionStater is satisfied by *redis.RedisCache.
type connectionStater interface {
	ConnectionState() string
}

// dbHealthChecker wraps the database for health checks.
type dbHealthChecker struct{ db pinger }

func (d *dbHealthChecker) Name() string                    { return "database" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.Ping(ctx) }

// cacheHealthChecker reads the tracked connection state; it never touches the network.
type cacheHealthChecker struct{ cache ports.Cache }

func (c *cacheHealthChecker) Name() string { return "redis" }
func (c *cacheHealthChecker) Check(ctx context.Context) error {
	if !c.cache.IsAlive() {
		return errCacheDown
	}
	return nil
}

func (c *cacheHealthChecker) State() string {
	if s, ok := c.cache.(connectionStater); ok {
		return s.ConnectionState()
	}
	if c.cache.IsAlive() {
		return "connected"
	}
	return "disconnected"
}

// NewDBHealthChecker creates a health checker for the database.
func NewDBHealthChecker(db pinger) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewCacheHealthChecker creates a health checker for the cache. The returned
// checker also implements ports.StateReporter.
func NewCacheHealthChecker(cache ports.Cache) ports.HealthChecker {
	return &cacheHealthChecker{cache: cache}
}
