package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"kiosk-backend/internal/infrastructure/database"
)

// dbEnv gom lỗi parse để báo một lần thay vì dừng ở biến sai đầu tiên.
type dbEnv struct {
	errs []error
}

func (e *dbEnv) intVar(key string, def int) int {
	raw := getEnv(key, strconv.Itoa(def))
	n, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return n
}

func (e *dbEnv) durationVar(key string, def time.Duration) time.Duration {
	raw := getEnv(key, def.String())
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s %q: %w", key, raw, err))
		return def
	}
	return d
}

// LoadDatabaseConfig reads the DB_* variables. Every malformed value is
// reported in the returned error.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	env := &dbEnv{}

	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.intVar("DB_PORT", 5432),
		Username: getEnv("DB_USER", "kiosk"),
		Password: getEnv("DB_PASSWORD", "secret"),
		DBName:   getEnv("DB_NAME", "kiosk_dev"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(env.intVar("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(env.intVar("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   env.durationVar("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   env.durationVar("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: env.durationVar("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     env.intVar("DB_MAX_RETRIES", 5),
		RetryDelay:     env.durationVar("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: env.durationVar("DB_CONNECT_TIMEOUT", 10*time.Second),

		MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "migrations"),
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}
	if getEnv("APP_ENV", "development") == "production" && os.Getenv("DB_PASSWORD") == "" {
		return nil, errors.New("DB_PASSWORD must be set in production")
	}
	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}
	return cfg, nil
}
