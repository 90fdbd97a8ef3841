// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
	Backup  BackupConfig
}

type ServerConfig struct {
	Addr           string
	WebDir         string
	RateLimitRPS   float64
	RateLimitBurst int
}

type StorageConfig struct {
	Backend     string
	SQLitePath  string
	DatabaseURL string
	RedisAddr   string
	RedisKey    string
}

type LogConfig struct {
	Level string
	File  string
}

type BackupConfig struct {
	// Dir is where snapshots are written. Empty disables backups.
	Dir      string
	Schedule string
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:           getEnv("ADDR", ":8080"),
			WebDir:         getEnv("WEB_DIR", "web"),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(getEnv("STORAGE", StorageSQLite)),
			SQLitePath:  getEnv("SQLITE_PATH", "./data/fittrack.db"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
			RedisKey:    getEnv("REDIS_KEY", "fitness-tracker-data"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Backup: BackupConfig{
			Dir:      os.Getenv("BACKUP_DIR"),
			Schedule: getEnv("BACKUP_SCHEDULE", "0 0 3 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects missing or inconsistent settings.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("ADDR is required")
	}
	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be > 0")
	}
	if c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 1")
	}

	switch c.Storage.Backend {
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for sqlite storage")
		}
	case StoragePostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres storage")
		}
	case StorageRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for redis storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("STORAGE must be one of sqlite, postgres, redis, memory; got %q", c.Storage.Backend)
	}

	if c.Backup.Dir != "" && c.Backup.Schedule == "" {
		return fmt.Errorf("BACKUP_SCHEDULE is required when BACKUP_DIR is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		slog.Warn("invalid number, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}
