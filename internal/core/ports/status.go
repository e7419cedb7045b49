package ports

import (
	"context"

	"github.com/avatarctic/status-service/internal/core/domain/status"
)

// DatabaseService is the persistent store as seen by the status reporter.
type DatabaseService interface {
	IsAlive(ctx context.Context) bool
}

// StatsRepository counts the rows the reporter exposes.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountFiles(ctx context.Context) (int, error)
}

// StatusService assembles liveness and statistics for the HTTP layer.
type StatusService interface {
	GetStatus(ctx context.Context) (status.AppStatus, error)
	GetStats(ctx context.Context) (status.AppStats, error)
	GetReport(ctx context.Context) (status.Report, error)
}
