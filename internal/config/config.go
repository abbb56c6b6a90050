package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	ServerPort      string
	APIKeysFile     string
	APIKeysInline   string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	RedisURL        string
	RateLimit       int
	RateLimitWindow time.Duration
	BrandSource     string
	BrandPoweredBy  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		APIKeysFile:     getEnv("API_KEYS_FILE", ""),
		APIKeysInline:   getEnv("API_KEYS", ""),
		UpstreamURL:     getEnv("UPSTREAM_URL", "https://gstapi.charteredinfo.com/commonapi/gstreturntracker.ashx"),
		UpstreamTimeout: getDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second),
		RedisURL:        getEnv("REDIS_URL", ""),
		RateLimit:       getIntEnv("RATE_LIMIT", 60),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		BrandSource:     getEnv("BRAND_SOURCE", "@ZEXX_CYBER"),
		BrandPoweredBy:  getEnv("BRAND_POWERED_BY", "@CYBER×CHAT"),
	}

	if cfg.UpstreamURL == "" {
		return nil, &ConfigError{Message: "UPSTREAM_URL must not be empty"}
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, &ConfigError{Message: "UPSTREAM_TIMEOUT must be positive"}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}
