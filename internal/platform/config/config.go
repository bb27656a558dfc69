package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr               string
	Environment        string
	DatabaseURL        string
	SessionSecret      string
	SessionTTL         time.Duration
	InviteCode         string
	SubmitEndpoint     string
	SubmitTimeout      time.Duration
	SubmitStubLatency  time.Duration
	MaxBodyBytes       int64
	RateLimitPerMinute int
	JanitorInterval    time.Duration
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		Environment:        getEnv("APP_ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SessionSecret:      getEnv("SESSION_SECRET", "dev-only-secret"),
		SessionTTL:         getEnvDuration("SESSION_TTL", 2*time.Hour),
		InviteCode:         getEnv("INVITE_CODE", ""),
		SubmitEndpoint:     getEnv("SUBMIT_ENDPOINT", ""),
		SubmitTimeout:      getEnvDuration("SUBMIT_TIMEOUT", 10*time.Second),
		SubmitStubLatency:  getEnvDuration("SUBMIT_STUB_LATENCY", 1500*time.Millisecond),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		JanitorInterval:    getEnvDuration("JANITOR_INTERVAL", 10*time.Minute),
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
	if c.Environment == "production" && (c.SessionSecret == "" || c.SessionSecret == "dev-only-secret") {
		return fmt.Errorf("SESSION_SECRET must be set to a strong value in production")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.SubmitEndpoint != "" && !strings.HasPrefix(c.SubmitEndpoint, "http") {
		return fmt.Errorf("SUBMIT_ENDPOINT must be an http(s) URL")
	}
	return nil
}
