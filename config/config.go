package config

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"
)

// AppConfig holds the process settings read from the environment.
type AppConfig struct {
	Port        string
	Env         string
	DatabaseURL string
	RedisURL    string
	FrontendURL string

	JWTSecret string
	JWTExpiry time.Duration

	PaymentDelay      time.Duration
	SessionTTL        time.Duration
	CartSnapshotTTL   time.Duration
	RabbitMQURL       string
	OrdersQueue       string
	ResendAPIKey      string
	ResendFromEmail   string
	GoogleClientID    string
	GoogleSecret      string
	GoogleRedirectURL string
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads AppConfig from the environment, applying defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		Port:              getEnv("PORT", "8081"),
		Env:               getEnv("APP_ENV", "development"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:5173"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		OrdersQueue:       getEnv("ORDERS_QUEUE", "orders.placed"),
		ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
		ResendFromEmail:   getEnv("RESEND_FROM_EMAIL", "noreply@fitgear.shop"),
		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleSecret:      os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL: getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8081/api/auth/google/callback"),
	}

	var err error
	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", 24*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.PaymentDelay, err = getDuration("PAYMENT_DELAY", 2*time.Second); err != nil {
		return cfg, err
	}
	if cfg.SessionTTL, err = getDuration("CHECKOUT_SESSION_TTL", 30*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.CartSnapshotTTL, err = getDuration("CART_SNAPSHOT_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.CartSnapshotTTL <= cfg.SessionTTL {
		return cfg, errors.New("CART_SNAPSHOT_TTL must be longer than CHECKOUT_SESSION_TTL")
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET environment variable not set")
	}
	return cfg, nil
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.New("invalid duration in " + key + ": " + err.Error())
	}
	if d < 0 {
		return 0, errors.New(key + " must not be negative")
	}
	return d, nil
}
