package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAppName        = "Shoply"
	defaultAppEnv         = "development"
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultShutdownDelay  = 10 * time.Second
	defaultIdempotencyTTL = 24 * time.Hour
	defaultSessionTTL     = 24 * time.Hour
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName     string
	AppEnv      string
	Port        string
	LogLevel    string
	DatabaseURL string
	RedisURL    string

	// JWTSecret signs bearer tokens; SessionKey protects session state at rest.
	JWTSecret  string
	SessionKey string

	// Payment provider credentials.
	StripeSecretKey string
	WebhookSecret   string

	// TokenTTL of zero means issued tokens carry no expiry claim.
	TokenTTL time.Duration

	SessionTTL     time.Duration
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
		SessionKey:      os.Getenv("SESSION_KEY"),
		StripeSecretKey: os.Getenv("STRIPE_SERVER_KEY"),
		WebhookSecret:   os.Getenv("ENDPOINT_SECRET"),
		SessionTTL:      defaultSessionTTL,
		ShutdownPeriod:  defaultShutdownDelay,
		IdempotencyTTL:  defaultIdempotencyTTL,
	}

	durations := []struct {
		envVar string
		target *time.Duration
	}{
		{"TOKEN_TTL", &cfg.TokenTTL},
		{"SESSION_TTL", &cfg.SessionTTL},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownPeriod},
		{"IDEMPOTENCY_TTL", &cfg.IdempotencyTTL},
	}
	for _, d := range durations {
		v := os.Getenv(d.envVar)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", d.envVar, err)
		}
		*d.target = parsed
	}

	required := []struct {
		name, value string
	}{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"REDIS_URL", cfg.RedisURL},
		{"JWT_SECRET_KEY", cfg.JWTSecret},
		{"SESSION_KEY", cfg.SessionKey},
		{"STRIPE_SERVER_KEY", cfg.StripeSecretKey},
		{"ENDPOINT_SECRET", cfg.WebhookSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return Config{}, fmt.Errorf("%s must be set", r.name)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
