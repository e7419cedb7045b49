package repositories

import (
	"context"
	"fmt"

	"github.com/avatarctic/status-service/internal/core/ports"
	"github.com/avatarctic/status-service/internal/infrastructure/db"
	"github.com/sirupsen/logrus"
)

// StatsRepository counts rows for the status reporter.
type StatsRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewStatsRepository(database *db.Database, logger *logrus.Logger) ports.StatsRepository {
	return &StatsRepository{db: database, logger: logger}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "users", `SELECT COUNT(*) FROM users`)
}

func (r *StatsRepository) CountFiles(ctx context.Context) (int, error) {
	return r.count(ctx, "files", `SELECT COUNT(*) FROM files`)
}

func (r *StatsRepository) count(ctx context.Context, table, query string) (int, error) {
	var n int
	if err := r.db.DB.GetContext(ctx, &n, query); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"table": table}).WithError(err).Error("db: failed to count rows")
		}
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
