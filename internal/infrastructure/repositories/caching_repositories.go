package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/avatarctic/status-service/internal/core/ports"
)

const (
	usersCountKey = "stats:users"
	filesCountKey = "stats:files"
)

// CachingStatsRepository decorates a StatsRepository with cache-aside on the counts.
// A disconnected cache only costs the lookup: counts then come straight from the database.
type CachingStatsRepository struct {
	inner  ports.StatsRepository
	cache  ports.Cache
	ttl    time.Duration
	logger *logrus.Logger
	sf     singleflight.Group
}

func NewCachingStatsRepository(inner ports.StatsRepository, cache ports.Cache, ttl time.Duration, logger *logrus.Logger) ports.StatsRepository {
	return &CachingStatsRepository{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func (r *CachingStatsRepository) CountUsers(ctx context.Context) (int, error) {
	return r.cachedCount(ctx, usersCountKey, r.inner.CountUsers)
}

func (r *CachingStatsRepository) CountFiles(ctx context.Context) (int, error) {
	return r.cachedCount(ctx, filesCountKey, r.inner.CountFiles)
}

func (r *CachingStatsRepository) cachedCount(ctx context.Context, key string, load func(context.Context) (int, error)) (int, error) {
	if n, ok := r.lookup(ctx, key); ok {
		return n, nil
	}

	// Callers that join the flight share its outcome, so one caller cancelling
	// must not fail the rest.
	shared := context.WithoutCancel(ctx)
	res, err, _ := r.sf.Do(key, func() (any, error) {
		n, err := load(shared)
		if err != nil {
			return 0, err
		}
		if err := r.cache.Set(shared, key, strconv.Itoa(n), r.ttl); err != nil && r.logger != nil {
			r.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Debug("cache: failed to store count")
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return res.(int), nil
}

func (r *CachingStatsRepository) lookup(ctx context.Context, key string) (int, bool) {
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil || !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
