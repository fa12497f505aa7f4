package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandesh/prepquiz/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                    ":8080",
		DBPath:                  "test.db",
		LogLevel:                "INFO",
		FreeQuestionLimit:       10,
		DefaultTimeLimitMinutes: 60,
		JWTSecret:               "secret",
		TokenTTLHours:           720,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "LOUD"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_FreeQuestionLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		valid bool
	}{
		{name: "zero limit", limit: 0, valid: false},
		{name: "negative limit", limit: -3, valid: false},
		{name: "minimum limit", limit: 1, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.FreeQuestionLimit = tt.limit

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "FREE_QUESTION_LIMIT")
			}
		})
	}
}

func TestValidate_NegativeTimeLimit(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultTimeLimitMinutes = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_TIME_LIMIT_MINUTES")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
	assert.Contains(t, err.Error(), "JWT_SECRET cannot be empty")
	assert.Contains(t, err.Error(), "TOKEN_TTL_HOURS")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("FREE_QUESTION_LIMIT", "5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.FreeQuestionLimit)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("FREE_QUESTION_LIMIT", "lots")

	cfg := config.Load()
	assert.Equal(t, 10, cfg.FreeQuestionLimit)

	os.Unsetenv("FREE_QUESTION_LIMIT")
}
