package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/status-service/internal/application/services"
	"github.com/avatarctic/status-service/internal/core/domain/status"
	tmocks "github.com/avatarctic/status-service/test/mocks"
)

func TestGetStatus_ReportsBothLiveness(t *testing.T) {
	cache := tmocks.NewCacheMock()
	cache.Alive = false
	db := &tmocks.DatabaseServiceMock{IsAliveFn: func(ctx context.Context) bool { return true }}
	svc := impl.NewStatusService(cache, db, &tmocks.StatsRepositoryMock{}, nil)

	st, err := svc.GetStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, status.AppStatus{Redis: false, DB: true}, st)
	require.Zero(t, cache.Calls)
}

func TestGetStatus_CancelledContext(t *testing.T) {
	svc := impl.NewStatusService(tmocks.NewCacheMock(), &tmocks.DatabaseServiceMock{}, &tmocks.StatsRepositoryMock{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetStatus(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGetStats_ReturnsCounts(t *testing.T) {
	stats := &tmocks.StatsRepositoryMock{
		CountUsersFn: func(ctx context.Context) (int, error) { return 4, nil },
		CountFilesFn: func(ctx context.Context) (int, error) { return 30, nil },
	}
	svc := impl.NewStatusService(tmocks.NewCacheMock(), &tmocks.DatabaseServiceMock{}, stats, nil)

	got, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, status.AppStats{Users: 4, Files: 30}, got)
}

func TestGetStats_NoPartialResultOnError(t *testing.T) {
	boom := errors.New("boom")
	stats := &tmocks.StatsRepositoryMock{
		CountUsersFn: func(ctx context.Context) (int, error) { return 4, nil },
		CountFilesFn: func(ctx context.Context) (int, error) { return 0, boom },
	}
	svc := impl.NewStatusService(tmocks.NewCacheMock(), &tmocks.DatabaseServiceMock{}, stats, nil)

	got, err := svc.GetStats(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, status.AppStats{}, got)
}

func TestGetReport_Flattens(t *testing.T) {
	stats := &tmocks.StatsRepositoryMock{
		CountUsersFn: func(ctx context.Context) (int, error) { return 1, nil },
		CountFilesFn: func(ctx context.Context) (int, error) { return 2, nil },
	}
	svc := impl.NewStatusService(tmocks.NewCacheMock(), &tmocks.DatabaseServiceMock{}, stats, nil)

	got, err := svc.GetReport(context.Background())
	require.NoError(t, err)
	require.Equal(t, status.Report{Redis: true, DB: true, Users: 1, Files: 2}, got)
}
