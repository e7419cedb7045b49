package ports

import (
	"context"
	"errors"
	"time"
)

// ErrNotConnected is returned by every Cache operation attempted while the connection is down.
// No command reaches the server in that case.
var ErrNotConnected = errors.New("cache: client is not connected")

// Cache defines a minimal connection-aware key-value cache contract.
type Cache interface {
	// IsAlive reports the current connection state without blocking.
	IsAlive() bool
	// Get returns the value for key. ok=false if not found.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value for key with TTL (0 or negative means no expiration).
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}
