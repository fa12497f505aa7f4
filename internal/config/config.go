package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	DBPath                  string
	LogLevel                string
	FreeQuestionLimit       int
	DefaultTimeLimitMinutes int
	JWTSecret               string
	TokenTTLHours           int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                    envOr("ADDR", ":8080"),
		DBPath:                  envOr("DB_PATH", "file:prepquiz.db"),
		LogLevel:                envOr("LOG_LEVEL", "INFO"),
		FreeQuestionLimit:       envIntOr("FREE_QUESTION_LIMIT", 10),
		DefaultTimeLimitMinutes: envIntOr("DEFAULT_TIME_LIMIT_MINUTES", 60),
		JWTSecret:               envOr("JWT_SECRET", "prepquiz-dev-secret"),
		TokenTTLHours:           envIntOr("TOKEN_TTL_HOURS", 720),
	}
}

// Validate checks the configuration for values the server cannot run with.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if c.FreeQuestionLimit < 1 {
		problems = append(problems, fmt.Sprintf("FREE_QUESTION_LIMIT must be at least 1, got %d", c.FreeQuestionLimit))
	}
	if c.DefaultTimeLimitMinutes < 0 {
		problems = append(problems, fmt.Sprintf("DEFAULT_TIME_LIMIT_MINUTES cannot be negative, got %d", c.DefaultTimeLimitMinutes))
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}
	if c.TokenTTLHours < 1 {
		problems = append(problems, fmt.Sprintf("TOKEN_TTL_HOURS must be at least 1, got %d", c.TokenTTLHours))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
