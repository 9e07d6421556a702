package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultDenylist is used when DENYLIST_WORDS is not configured. The real
// deployment overrides this with the festival committee's list.
var defaultDenylist = []string{"badword", "spamlink"}

// Config holds application configuration
type Config struct {
	Port string
	Env  string

	CMSBaseURL string
	CMSAPIKey  string
	CMSTimeout time.Duration

	RedisURL string
	CacheTTL time.Duration

	CookieSecret  string
	DenylistWords []string
}

// Load returns configuration from environment variables. The cookie secret
// may only fall back to the development default outside production.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		CMSBaseURL:    getEnv("CMS_BASE_URL", "http://localhost:3001/api/v1"),
		CMSAPIKey:     os.Getenv("CMS_API_KEY"),
		CMSTimeout:    getEnvDuration("CMS_TIMEOUT_SECONDS", 10*time.Second),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheTTL:      getEnvDuration("CACHE_TTL_SECONDS", 60*time.Second),
		CookieSecret:  os.Getenv("COOKIE_SECRET"),
		DenylistWords: getEnvList("DENYLIST_WORDS", defaultDenylist),
	}

	if cfg.CookieSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("COOKIE_SECRET is required in production")
		}
		cfg.CookieSecret = "dev-secret"
	}

	return cfg, nil
}

// IsProduction reports whether the process runs in a production-equivalent
// environment. Controls the Secure cookie attribute and secret enforcement.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			words = append(words, p)
		}
	}
	if len(words) == 0 {
		return fallback
	}
	return words
}
