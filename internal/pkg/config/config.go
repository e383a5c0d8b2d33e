package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
)

type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
}

type RepositoriesConfig struct {
	SQLite SQLiteConfig
}

type Config struct {
	Repositories RepositoriesConfig
	MediaDir     string
	LogLevel     zapcore.Level
	OTLPEndpoint string
}

func Load() (*Config, error) {
	busyMs, err := strconv.Atoi(getEnvOrDefault("GONEXT_BUSY_TIMEOUT_MS", "5000"))
	if err != nil || busyMs < 0 {
		return nil, fmt.Errorf("GONEXT_BUSY_TIMEOUT_MS must be a non-negative integer")
	}

	level, err := zapcore.ParseLevel(getEnvOrDefault("GONEXT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("GONEXT_LOG_LEVEL: %w", err)
	}

	cfg := &Config{
		Repositories: RepositoriesConfig{
			SQLite: SQLiteConfig{
				Path:        getEnvOrDefault("GONEXT_DB_PATH", "gonext.db"),
				BusyTimeout: time.Duration(busyMs) * time.Millisecond,
			},
		},
		MediaDir:     getEnvOrDefault("GONEXT_MEDIA_DIR", "media"),
		LogLevel:     level,
		OTLPEndpoint: os.Getenv("GONEXT_OTLP_ENDPOINT"),
	}

	if cfg.Repositories.SQLite.Path == "" {
		return nil, fmt.Errorf("GONEXT_DB_PATH must not be empty")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
