package repositories

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tmocks "github.com/avatarctic/status-service/test/mocks"
)

func TestCachingStatsRepository_CacheAside(t *testing.T) {
	loads := 0
	inner := &tmocks.StatsRepositoryMock{CountUsersFn: func(ctx context.Context) (int, error) {
		loads++
		return 7, nil
	}}
	cache := tmocks.NewCacheMock()
	repo := NewCachingStatsRepository(inner, cache, 5*time.Second, nil)

	for i := 0; i < 3; i++ {
		n, err := repo.CountUsers(context.Background())
		require.NoError(t, err)
		require.Equal(t, 7, n)
	}
	require.Equal(t, 1, loads)
	require.Equal(t, "7", cache.Data[usersCountKey])
	require.Equal(t, 5*time.Second, cache.TTLs[usersCountKey])
}

func TestCachingStatsRepository_FallsBackWhenCacheDown(t *testing.T) {
	loads := 0
	inner := &tmocks.StatsRepositoryMock{CountFilesFn: func(ctx context.Context) (int, error) {
		loads++
		return 3, nil
	}}
	cache := tmocks.NewCacheMock()
	cache.Alive = false
	repo := NewCachingStatsRepository(inner, cache, time.Second, nil)

	for i := 0; i < 2; i++ {
		n, err := repo.CountFiles(context.Background())
		require.NoError(t, err)
		require.Equal(t, 3, n)
	}
	require.Equal(t, 2, loads)
	require.Zero(t, cache.Calls)
}

func TestCachingStatsRepository_DoesNotCacheErrors(t *testing.T) {
	boom := errors.New("boom")
	inner := &tmocks.StatsRepositoryMock{CountUsersFn: func(ctx context.Context) (int, error) { return 0, boom }}
	cache := tmocks.NewCacheMock()
	repo := NewCachingStatsRepository(inner, cache, time.Second, nil)

	_, err := repo.CountUsers(context.Background())
	require.ErrorIs(t, err, boom)
	require.Empty(t, cache.Data)
}

// gatedCount blocks every load until release is closed.
type gatedCount struct {
	release chan struct{}
	loads   atomic.Int32
}

func (g *gatedCount) load(ctx context.Context) (int, error) {
	g.loads.Add(1)
	<-g.release
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 7, nil
}

// waitForLookups returns once n callers have missed the cache and are about
// to join the flight.
func waitForLookups(t *testing.T, cache *tmocks.CacheMock, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return cache.CallCount() >= n }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
}

func TestCachingStatsRepository_CoalescesConcurrentMisses(t *testing.T) {
	g := &gatedCount{release: make(chan struct{})}
	cache := tmocks.NewCacheMock()
	repo := NewCachingStatsRepository(&tmocks.StatsRepositoryMock{CountUsersFn: g.load}, cache, time.Minute, nil)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]int, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.CountUsers(context.Background())
		}(i)
	}

	waitForLookups(t, cache, callers)
	close(g.release)
	wg.Wait()

	require.Equal(t, int32(1), g.loads.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, 7, results[i])
	}
}

func TestCachingStatsRepository_FirstCallerCancelDoesNotFailOthers(t *testing.T) {
	g := &gatedCount{release: make(chan struct{})}
	cache := tmocks.NewCacheMock()
	repo := NewCachingStatsRepository(&tmocks.StatsRepositoryMock{CountUsersFn: g.load}, cache, time.Minute, nil)

	first, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	var firstErr, secondErr error
	var second int

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = repo.CountUsers(first)
	}()
	waitForLookups(t, cache, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		second, secondErr = repo.CountUsers(context.Background())
	}()
	waitForLookups(t, cache, 2)

	cancel()
	close(g.release)
	wg.Wait()

	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	require.Equal(t, 7, second)
	require.Equal(t, int32(1), g.loads.Load())
	require.Equal(t, "7", cache.Data[usersCountKey])
}
