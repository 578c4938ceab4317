package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.JWTExpiry != 7*24*time.Hour {
		t.Errorf("expected default JWT expiry of 7 days, got %s", cfg.JWTExpiry)
	}
	if cfg.RateLimitBurst != 20 {
		t.Errorf("expected default burst 20, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9091")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_EXPIRY", "24h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("REDIS_TLS", "true")

	cfg := Load()

	if cfg.Port != "9091" {
		t.Errorf("expected port 9091, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("expected 24h expiry, got %s", cfg.JWTExpiry)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitPerSecond != 2.5 {
		t.Errorf("expected rate 2.5, got %f", cfg.RateLimitPerSecond)
	}
	if !cfg.RedisTLS {
		t.Error("expected RedisTLS true")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("JWT_EXPIRY", "soon")

	cfg := Load()

	if cfg.RateLimitBurst != 20 {
		t.Errorf("expected fallback burst 20, got %d", cfg.RateLimitBurst)
	}
	if cfg.JWTExpiry != 7*24*time.Hour {
		t.Errorf("expected fallback expiry, got %s", cfg.JWTExpiry)
	}
}
