package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDatabaseConfig_Defaults(t *testing.T) {
	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, int32(25), cfg.MaxConns)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
}

func TestLoadDatabaseConfig_ReportsEveryBadValue(t *testing.T) {
	t.Setenv("DB_PORT", "five")
	t.Setenv("DB_RETRY_DELAY", "soon")

	_, err := LoadDatabaseConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PORT")
	assert.Contains(t, err.Error(), "DB_RETRY_DELAY")
}

func TestLoadDatabaseConfig_PoolBounds(t *testing.T) {
	t.Setenv("DB_MIN_CONNECTIONS", "30")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_MIN_CONNECTIONS")
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = Load()
	assert.ErrorContains(t, err, "CRON_SECRET")

	t.Setenv("CRON_SECRET", "cron")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_RejectsBadSweepSettings(t *testing.T) {
	t.Setenv("IMAGE_SWEEP_BATCH_SIZE", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "IMAGE_SWEEP_BATCH_SIZE")
}
