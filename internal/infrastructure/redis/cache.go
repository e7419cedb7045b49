package redis

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/status-service/internal/core/ports"
)

// Liveness is the connection signal the cache consults before each command.
type Liveness interface {
	IsAlive() bool
}

// RedisCache implements ports.Cache on top of a live-checked Redis connection.
type RedisCache struct {
	r      redis.Cmdable
	live   Liveness
	closer io.Closer
	// optional key prefix to namespace entries
	prefix string
	logger *logrus.Logger

	closeOnce sync.Once
}

var _ ports.Cache = (*RedisCache)(nil)

// NewRedisCache creates a cache that owns conn; closing the cache closes conn.
func NewRedisCache(conn *Connection, prefix string, logger *logrus.Logger) *RedisCache {
	return newRedisCache(conn.Client(), conn, conn, prefix, logger)
}

func newRedisCache(r redis.Cmdable, live Liveness, closer io.Closer, prefix string, logger *logrus.Logger) *RedisCache {
	return &RedisCache{r: r, live: live, closer: closer, prefix: prefix, logger: logger}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// IsAlive implements Cache.IsAlive.
func (c *RedisCache) IsAlive() bool {
	return c.live.IsAlive()
}

// ConnectionState names the tracked connection state.
func (c *RedisCache) ConnectionState() string {
	if s, ok := c.live.(interface{ State() ConnState }); ok {
		return s.State().String()
	}
	if c.live.IsAlive() {
		return StateConnected.String()
	}
	return StateDisconnected.String()
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	if !c.live.IsAlive() {
		return "", false, c.reject("get", key)
	}
	val, err := c.r.Get(ctx, c.namespaced(key)).Result()
	if err == redis.Nil {
		operationsTotal.WithLabelValues("get", resultMiss).Inc()
		return "", false, nil
	}
	if err != nil {
		operationsTotal.WithLabelValues("get", resultError).Inc()
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	operationsTotal.WithLabelValues("get", resultHit).Inc()
	return val, true, nil
}

// Set implements Cache.Set. A positive ttl is sent with the SET itself, so the key
// never exists without its expiry.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !c.live.IsAlive() {
		return c.reject("set", key)
	}
	// go-redis treats -1 as KEEPTTL
	if ttl < 0 {
		ttl = 0
	}
	if err := c.r.Set(ctx, c.namespaced(key), value, ttl).Err(); err != nil {
		operationsTotal.WithLabelValues("set", resultError).Inc()
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	operationsTotal.WithLabelValues("set", resultOK).Inc()
	return nil
}

// Delete implements Cache.Delete.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if !c.live.IsAlive() {
		return c.reject("del", key)
	}
	if err := c.r.Del(ctx, c.namespaced(key)).Err(); err != nil {
		operationsTotal.WithLabelValues("del", resultError).Inc()
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	operationsTotal.WithLabelValues("del", resultOK).Inc()
	return nil
}

// Close releases the underlying connection. Errors are logged, not returned.
func (c *RedisCache) Close() {
	c.closeOnce.Do(func() {
		if c.closer == nil {
			return
		}
		if err := c.closer.Close(); err != nil {
			if c.logger != nil {
				c.logger.WithError(err).Error("redis: error closing connection")
			}
			return
		}
		if c.logger != nil {
			c.logger.Info("redis: connection closed")
		}
	})
}

func (c *RedisCache) reject(op, key string) error {
	operationsTotal.WithLabelValues(op, resultRejected).Inc()
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{"operation": op, "key": key}).Debug("redis: client is not connected")
	}
	return ports.ErrNotConnected
}
