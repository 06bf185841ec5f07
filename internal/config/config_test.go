package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_PATH", "MAX_SOURCE_LEN", "RATE_LIMIT_MAX", "CACHE_TTL_MS", "CACHE_MAX", "MAX_BODY_BYTES", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MaxSourceLen != 1000 {
		t.Errorf("MaxSourceLen = %d, want 1000", cfg.MaxSourceLen)
	}
	if cfg.RateLimitMax != 60 {
		t.Errorf("RateLimitMax = %d, want 60", cfg.RateLimitMax)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", cfg.CacheTTL)
	}
	if cfg.CacheMax != 50000 {
		t.Errorf("CacheMax = %d, want 50000", cfg.CacheMax)
	}
	if cfg.MaxBodyBytes != 65536 {
		t.Errorf("MaxBodyBytes = %d, want 65536", cfg.MaxBodyBytes)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_PATH", "/tmp/out.jsonl")
	t.Setenv("MAX_SOURCE_LEN", "500")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("CACHE_TTL_MS", "60000")
	t.Setenv("CACHE_MAX", "100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DataPath != "/tmp/out.jsonl" {
		t.Errorf("DataPath = %q", cfg.DataPath)
	}
	if cfg.MaxSourceLen != 500 {
		t.Errorf("MaxSourceLen = %d", cfg.MaxSourceLen)
	}
	if cfg.RateLimitMax != 10 {
		t.Errorf("RateLimitMax = %d", cfg.RateLimitMax)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	if cfg.CacheMax != 100 {
		t.Errorf("CacheMax = %d", cfg.CacheMax)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != want[0] || cfg.AllowedOrigins[1] != want[1] {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("MAX_SOURCE_LEN", "not-a-number")
	t.Setenv("RATE_LIMIT_MAX", "-5")
	t.Setenv("CACHE_TTL_MS", "0")

	cfg := Load()

	if cfg.MaxSourceLen != 1000 {
		t.Errorf("MaxSourceLen = %d, want default 1000", cfg.MaxSourceLen)
	}
	if cfg.RateLimitMax != 60 {
		t.Errorf("RateLimitMax = %d, want default 60", cfg.RateLimitMax)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want default 24h", cfg.CacheTTL)
	}
}
