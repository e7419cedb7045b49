package ports

import "context"

// HealthChecker abstracts a dependency health probe.
// Implementations should return error if unhealthy.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// StateReporter is implemented by checkers that track a connection state
// (for the cache: connecting, connected or disconnected).
type StateReporter interface {
	State() string
}
