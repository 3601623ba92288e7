package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:               ":3000",
		BackendBaseURL:     "http://localhost:8000",
		BackendTimeout:     10 * time.Second,
		FrontendDir:        "frontend/build",
		StateDir:           ".workforce-state",
		Environment:        "development",
		MaxBodyBytes:       1 << 20,
		RateLimitPerMinute: 60,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative backend url", func(c *Config) { c.BackendBaseURL = "localhost:8000" }},
		{"empty state dir", func(c *Config) { c.StateDir = "  " }},
		{"zero timeout", func(c *Config) { c.BackendTimeout = 0 }},
		{"tiny body limit", func(c *Config) { c.MaxBodyBytes = 128 }},
		{"zero rate limit", func(c *Config) { c.RateLimitPerMinute = 0 }},
		{"production without state key", func(c *Config) { c.Environment = "production" }},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestProductionWithStateKeyIsValid(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.StateEncryptionKey = "a long passphrase"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid production config, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":3000" {
		t.Fatalf("default addr = %q", cfg.Addr)
	}
	if cfg.BackendBaseURL != "http://localhost:8000" {
		t.Fatalf("default backend url = %q", cfg.BackendBaseURL)
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Fatalf("default timeout = %v", cfg.BackendTimeout)
	}
}
