package services

import (
	"context"
	"fmt"

	"github.com/avatarctic/status-service/internal/core/domain/status"
	"github.com/avatarctic/status-service/internal/core/ports"
	"github.com/sirupsen/logrus"
)

type StatusService struct {
	cache  ports.Cache
	db     ports.DatabaseService
	stats  ports.StatsRepository
	logger *logrus.Logger
}

func NewStatusService(cache ports.Cache, db ports.DatabaseService, stats ports.StatsRepository, logger *logrus.Logger) ports.StatusService {
	return &StatusService{cache: cache, db: db, stats: stats, logger: logger}
}

// GetStatus reports cache and database liveness. Neither check can fail on its own;
// only a cancelled request produces an error.
func (s *StatusService) GetStatus(ctx context.Context) (status.AppStatus, error) {
	st := status.AppStatus{
		Redis: s.cache.IsAlive(),
		DB:    s.db.IsAlive(ctx),
	}
	if err := ctx.Err(); err != nil {
		return status.AppStatus{}, err
	}
	return st, nil
}

// GetStats returns both counts or an error; never a partial result.
func (s *StatusService) GetStats(ctx context.Context) (status.AppStats, error) {
	users, err := s.stats.CountUsers(ctx)
	if err != nil {
		return status.AppStats{}, fmt.Errorf("count users: %w", err)
	}
	files, err := s.stats.CountFiles(ctx)
	if err != nil {
		return status.AppStats{}, fmt.Errorf("count files: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"users": users, "files": files}).Debug("stats collected")
	}
	return status.AppStats{Users: users, Files: files}, nil
}

func (s *StatusService) GetReport(ctx context.Context) (status.Report, error) {
	st, err := s.GetStatus(ctx)
	if err != nil {
		return status.Report{}, err
	}
	stats, err := s.GetStats(ctx)
	if err != nil {
		return status.Report{}, err
	}
	return status.NewReport(st, stats), nil
}
