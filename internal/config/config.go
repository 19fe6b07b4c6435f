package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	APIBaseURL      string        `env:"OPCA_API_URL" default:"http://localhost:5002"`
	CredentialsFile string        `env:"OPCA_CREDENTIALS_FILE"`
	CredentialsKey  string        `env:"OPCA_CREDENTIALS_KEY"`
	RedisURL        string        `env:"OPCA_REDIS_URL"`
	HTTPTimeout     time.Duration `env:"OPCA_HTTP_TIMEOUT" default:"30s"`
	LogLevel        string        `env:"LOG_LEVEL" default:"info"`
	LogFormat       string        `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if cfg.CredentialsFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.CredentialsFile = filepath.Join(home, ".opca", "credentials.json")
		}
		// No home dir: the file store runs disabled, which is valid.
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.APIBaseURL == "" {
		return fmt.Errorf("OPCA_API_URL must not be empty")
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("OPCA_HTTP_TIMEOUT must be positive")
	}

	if cfg.CredentialsKey != "" {
		keyBytes, err := hex.DecodeString(cfg.CredentialsKey)
		if err != nil {
			return fmt.Errorf("OPCA_CREDENTIALS_KEY must be valid hex: %w", err)
		}
		if len(keyBytes) != 32 {
			return fmt.Errorf("OPCA_CREDENTIALS_KEY must be exactly 64 hex characters (32 bytes), got %d bytes", len(keyBytes))
		}
	}

	return nil
}
