package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PLANNER_BASE_URL", "PLANNER_TIMEOUT", "REDIS_ADDR", "HTTP_PORT", "STUB_PORT",
		"JWT_SECRET", "RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "CORS_ALLOWED_ORIGINS", "MAX_SESSIONS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := NewConfig()
	assert.Equal(t, "http://127.0.0.1:8000", cfg.PlannerBaseURL)
	assert.Zero(t, cfg.PlannerTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "8000", cfg.StubPort)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10000, cfg.MaxSessions)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("PLANNER_BASE_URL", "https://planner.internal")
	t.Setenv("PLANNER_TIMEOUT", "12s")
	t.Setenv("RATE_LIMIT_MAX", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example, https://admin.example ,")

	cfg := NewConfig()
	assert.Equal(t, "https://planner.internal", cfg.PlannerBaseURL)
	assert.Equal(t, 12*time.Second, cfg.PlannerTimeout)
	assert.Equal(t, 25, cfg.RateLimitMax)
	assert.Equal(t, []string{"https://app.example", "https://admin.example"}, cfg.CORSAllowedOrigins)
}

func TestNewConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "lots")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	cfg := NewConfig()
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nHTTP_PORT=9090\n"), 0o600))
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })

	cfg := Load(path)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "7070", cfg.HTTPPort)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NotNil(t, cfg)
}
