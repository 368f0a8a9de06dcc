package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PlannerBaseURL     string
	PlannerTimeout     time.Duration
	RedisAddr          string
	HTTPPort           string
	StubPort           string
	JWTSecret          string
	RateLimitMax       int
	RateLimitWindow    time.Duration
	CORSAllowedOrigins []string
	MaxSessions        int
}

// Load reads an optional .env file into the environment before building the
// config. Variables already set win over the file.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load env file", "error", err)
	}
	return NewConfig()
}

func NewConfig() *Config {
	return &Config{
		PlannerBaseURL:     getEnv("PLANNER_BASE_URL", "http://127.0.0.1:8000"),
		PlannerTimeout:     getDuration("PLANNER_TIMEOUT", 0),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		StubPort:           getEnv("STUB_PORT", "8000"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		RateLimitMax:       getInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow:    getDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MaxSessions:        getInt("MAX_SESSIONS", 10000),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("Ignoring invalid integer setting", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("Ignoring invalid duration setting", "key", key, "value", raw)
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
