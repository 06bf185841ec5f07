package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for all tunables. Each can be overridden by environment variable.
const (
	defaultPort         = "8080"
	defaultDataPath     = "./data/dataset.jsonl"
	defaultMaxSourceLen = 1000
	defaultRateLimitMax = 60 // requests per minute per client IP
	defaultCacheTTL     = 24 * time.Hour
	defaultCacheMax     = 50000
	defaultMaxBodyBytes = 65536
)

// Config holds all environment-sourced settings for the ingest server.
type Config struct {
	Port           string
	DataPath       string
	MaxSourceLen   int
	RateLimitMax   int
	CacheTTL       time.Duration
	CacheMax       int
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// Load reads configuration from the environment, falling back to defaults
// for anything unset or unparseable.
func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", defaultPort),
		DataPath:       getEnv("DATA_PATH", defaultDataPath),
		MaxSourceLen:   getEnvInt("MAX_SOURCE_LEN", defaultMaxSourceLen),
		RateLimitMax:   getEnvInt("RATE_LIMIT_MAX", defaultRateLimitMax),
		CacheMax:       getEnvInt("CACHE_MAX", defaultCacheMax),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", defaultMaxBodyBytes)),
		CacheTTL:       defaultCacheTTL,
		AllowedOrigins: []string{"*"},
	}

	if v := os.Getenv("CACHE_TTL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.CacheTTL = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.AllowedOrigins = origins
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
