package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App             AppConfig
	Server          ServerConfig
	Database        DatabaseConfig
	JWT             JWTConfig
	Redis           RedisConfig
	Personalization PersonalizationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// PersonalizationConfig tunes the action log retention, ranking defaults and
// where session snapshots are kept.
type PersonalizationConfig struct {
	RetentionMaxAge    time.Duration
	RetentionMaxEvents int
	DefaultTopN        int
	CompareLimit       int
	SessionTTL         time.Duration
	MaxLiveSessions    int
	SnapshotBackend    string
}

const (
	SnapshotBackendRedis    = "redis"
	SnapshotBackendPostgres = "postgres"
	SnapshotBackendMemory   = "memory"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	jwtTTL, err := getEnvDuration("JWT_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	retentionMaxAge, err := getEnvDuration("RETENTION_MAX_AGE", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	retentionMaxEvents, err := getEnvInt("RETENTION_MAX_EVENTS", 1000)
	if err != nil {
		return nil, err
	}
	defaultTopN, err := getEnvInt("DEFAULT_TOP_N", 6)
	if err != nil {
		return nil, err
	}
	compareLimit, err := getEnvInt("COMPARE_LIMIT", 4)
	if err != nil {
		return nil, err
	}
	sessionTTL, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	maxLiveSessions, err := getEnvInt("MAX_LIVE_SESSIONS", 10000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront Personalization API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       jwtTTL,
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Personalization: PersonalizationConfig{
			RetentionMaxAge:    retentionMaxAge,
			RetentionMaxEvents: retentionMaxEvents,
			DefaultTopN:        defaultTopN,
			CompareLimit:       compareLimit,
			SessionTTL:         sessionTTL,
			MaxLiveSessions:    maxLiveSessions,
			SnapshotBackend:    getEnv("SNAPSHOT_BACKEND", SnapshotBackendMemory),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	switch cfg.Personalization.SnapshotBackend {
	case SnapshotBackendRedis, SnapshotBackendPostgres, SnapshotBackendMemory:
	default:
		return nil, fmt.Errorf("unknown SNAPSHOT_BACKEND %q", cfg.Personalization.SnapshotBackend)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return d, nil
}
