package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	t.Setenv("DB_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.Equal(t, 2*time.Second, cfg.Redis.ProbeInterval)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
	require.Contains(t, cfg.Database.DSN, "host=localhost")
	require.Contains(t, cfg.Database.DSN, "dbname=files_manager")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PROBE_INTERVAL", "250ms")
	t.Setenv("DB_RUN_MIGRATIONS", "false")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "cache.internal:6380", cfg.Redis.Addr())
	require.Equal(t, 250*time.Millisecond, cfg.Redis.ProbeInterval)
	require.False(t, cfg.Database.RunMigrations)
	require.Equal(t, 10, cfg.Redis.PoolSize)
}

func TestLoad_RejectsNonPositiveProbeInterval(t *testing.T) {
	t.Setenv("REDIS_PROBE_INTERVAL", "0s")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_StatsTTL(t *testing.T) {
	t.Setenv("REDIS_STATS_TTL", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Zero(t, cfg.Redis.StatsTTL)

	t.Setenv("REDIS_STATS_TTL", "5s")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, cfg.Redis.StatsTTL)

	t.Setenv("REDIS_STATS_TTL", "-1s")
	_, err = Load()
	require.Error(t, err)
}
