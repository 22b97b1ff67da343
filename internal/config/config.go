package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	// BaseURL is the MoveUp backend root, e.g. http://localhost:5085.
	BaseURL string

	// SampleStore selects the local health sample backend.
	SampleStore string // file | sqlite | postgres
	SamplesFile string
	SQLitePath  string
	PostgresDSN string

	// SessionFile holds the persisted user id / wallet address pair.
	SessionFile string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:         getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			BaseURL:     getEnv("MOVEUP_API_URL", "http://localhost:5085"),
			SampleStore: getEnv("SAMPLE_STORE", "file"),
			SamplesFile: getEnv("SAMPLES_FILE", "data/health_samples.json"),
			SQLitePath:  getEnv("SQLITE_PATH", "data/health_samples.db"),
			PostgresDSN: getEnv("POSTGRES_DSN", ""),
			SessionFile: getEnv("SESSION_FILE", "data/session.json"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("MOVEUP_API_URL must not be empty")
	}
	switch c.SampleStore {
	case "file":
		if c.SamplesFile == "" {
			return errors.New("File storage requires SAMPLES_FILE to be set")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLite storage requires SQLITE_PATH to be set")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when SAMPLE_STORE=postgres")
		}
	default:
		return errors.New("SAMPLE_STORE must be one of: file, sqlite, postgres")
	}
	if c.SessionFile == "" {
		return errors.New("SESSION_FILE must not be empty")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
