// Package config loads engine configuration from a .env file (if present)
// and environment variables, with defaults that work out of the box.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the engine and CLI.
type Config struct {
	// DBPath is the SQLite database file path. Empty means the XDG default.
	DBPath string
	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string
	// UserID identifies the learner whose history is read and written.
	UserID string
	// RandomSeed, when non-zero, makes problem generation deterministic.
	RandomSeed int64
}

// Load reads configuration from .env and the environment.
func Load() Config {
	// Ignore error so the binary still starts when no .env exists.
	_ = godotenv.Load()

	return Config{
		DBPath:     os.Getenv("ADAPTIX_DB"),
		LogLevel:   envOr("ADAPTIX_LOG_LEVEL", "INFO"),
		UserID:     envOr("ADAPTIX_USER", "default"),
		RandomSeed: envInt64Or("ADAPTIX_SEED", 0),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt64Or(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}
