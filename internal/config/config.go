package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr           = ":8080"
	defaultDatabaseURL    = "karam.db"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultJWTTTL         = "24h"
	defaultCurrency       = "SAR"
	defaultMoyasarBaseURL = "https://api.moyasar.com/v1"
	defaultLoginURL       = "/login.html"
)

type Config struct {
	AppEnv      string
	Addr        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigins []string

	// Moyasar gateway settings.
	MoyasarPublishableKey string
	MoyasarSecretKey      string
	MoyasarBaseURL        string
	PaymentCallbackURL    string
	Currency              string

	// Where unauthenticated checkouts get redirected.
	LoginURL string
}

// Load reads .env (if present) and the process environment, applying
// defaults and refusing unsafe defaults in prod-like environments.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = getEnv("ADDR", defaultAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	cfg.MoyasarPublishableKey = strings.TrimSpace(os.Getenv("MOYASAR_PUBLISHABLE_KEY"))
	cfg.MoyasarSecretKey = strings.TrimSpace(os.Getenv("MOYASAR_SECRET_KEY"))
	cfg.MoyasarBaseURL = getEnv("MOYASAR_BASE_URL", defaultMoyasarBaseURL)
	cfg.PaymentCallbackURL = strings.TrimSpace(os.Getenv("PAYMENT_CALLBACK_URL"))
	cfg.Currency = getEnv("PAYMENT_CURRENCY", defaultCurrency)
	cfg.LoginURL = getEnv("LOGIN_URL", defaultLoginURL)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if IsProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.MoyasarPublishableKey == "" || cfg.MoyasarSecretKey == "" {
			return fmt.Errorf("in prod/release Moyasar keys must be set")
		}
		if cfg.PaymentCallbackURL == "" {
			return fmt.Errorf("in prod/release PAYMENT_CALLBACK_URL must be set")
		}
	}
	return nil
}

// IsProdLike reports whether the environment name demands production
// safeguards.
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
