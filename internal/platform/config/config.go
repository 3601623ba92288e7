package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	BackendBaseURL     string
	BackendTimeout     time.Duration
	FrontendDir        string
	StateDir           string
	StateEncryptionKey string
	Environment        string
	MaxBodyBytes       int64
	RateLimitPerMinute int
}

// Load reads configuration from the environment. A .env file in the
// working directory is folded in first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:               getEnv("APP_ADDR", ":3000"),
		BackendBaseURL:     getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendTimeout:     getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		FrontendDir:        getEnv("FRONTEND_DIR", "frontend/build"),
		StateDir:           getEnv("STATE_DIR", ".workforce-state"),
		StateEncryptionKey: getEnv("STATE_ENCRYPTION_KEY", ""),
		Environment:        getEnv("APP_ENV", "development"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 10485760)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	parsed, err := url.Parse(c.BackendBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("BACKEND_BASE_URL must be an absolute URL")
	}
	if strings.TrimSpace(c.StateDir) == "" {
		return fmt.Errorf("STATE_DIR is required")
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Environment == "production" && strings.TrimSpace(c.StateEncryptionKey) == "" {
		return fmt.Errorf("STATE_ENCRYPTION_KEY must be set in production for session state at rest")
	}
	return nil
}
