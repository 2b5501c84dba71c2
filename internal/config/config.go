package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Email   EmailConfig
	MinIO   MinIOConfig
	Cron    CronConfig
	Image   ImageConfig
	Article ArticleConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	BaseURL     string // public URL, used for RSS links
	LogLevel    string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string // kiosk
	UseSSL    bool
	PublicURL string // base URL images are served from
	Timeout   time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	From     string
}

// CronConfig guards the externally triggered maintenance endpoints.
type CronConfig struct {
	Secret string
}

// =====================================================
// IMAGE LIFECYCLE
// =====================================================

type ImageConfig struct {
	OrphanRetention time.Duration // orphans younger than this survive a sweep
	SweepBatchSize  int
	SweepCron       string
	MaxUploadBytes  int64
}

type ArticleConfig struct {
	CacheTTL time.Duration
}

const defaultJWTSecret = "your-secret-key-change-in-production"

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Kiosk API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "kiosk"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
			Timeout:   getEnvDuration("STORAGE_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60*24),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnvInt("SMTP_PORT", 1025),
			From:     getEnv("SMTP_FROM", "noreply@kiosk.local"),
		},
		Cron: CronConfig{
			Secret: getEnv("CRON_SECRET", ""),
		},
		Image: ImageConfig{
			OrphanRetention: getEnvDuration("IMAGE_ORPHAN_RETENTION", 24*time.Hour),
			SweepBatchSize:  getEnvInt("IMAGE_SWEEP_BATCH_SIZE", 100),
			SweepCron:       getEnv("IMAGE_SWEEP_CRON", "0 * * * *"),
			MaxUploadBytes:  int64(getEnvInt("IMAGE_MAX_UPLOAD_BYTES", 4<<20)),
		},
		Article: ArticleConfig{
			CacheTTL: getEnvDuration("ARTICLE_CACHE_TTL", time.Hour),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Image.SweepBatchSize <= 0 {
		return fmt.Errorf("IMAGE_SWEEP_BATCH_SIZE must be positive")
	}
	if c.Image.OrphanRetention < 0 {
		return fmt.Errorf("IMAGE_ORPHAN_RETENTION must not be negative")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Cron.Secret == "" {
			return fmt.Errorf("CRON_SECRET must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
