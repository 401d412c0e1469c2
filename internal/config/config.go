package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is loaded once in main and passed around by value.
type Config struct {
	Env         string
	ServiceName string
	Port        int

	StoreDriver  string
	StoreURI     string
	StoreProject string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	AllowedOrigins     []string
	RateLimitPerMinute int
	MaxBodyBytes       int64

	OTLPEndpoint string
}

// Load reads the environment, after merging an optional .env file. Missing
// required settings are returned as an error so the process fails at startup.
func Load() (Config, error) {
	// a missing .env is normal outside local dev
	_ = godotenv.Load()

	var errs []error

	cfg := Config{
		Env:          getEnv("APP_ENV", "dev"),
		ServiceName:  getEnv("SERVICE_NAME", "birthdays"),
		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		StoreURI:     os.Getenv("STORE_URI"),
		StoreProject: os.Getenv("STORE_PROJECT"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AllowedOrigins: splitList(os.Getenv("ALLOWED_ORIGINS")),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8000); err != nil {
		errs = append(errs, err)
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 0); err != nil {
		errs = append(errs, err)
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 30*time.Second); err != nil {
		errs = append(errs, err)
	}

	maxBody, err := getEnvInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	switch c.StoreDriver {
	case DriverMemory:
		return nil
	case DriverMongo:
		if c.StoreURI == "" {
			return errors.New("STORE_URI environment variable is required")
		}
		if c.StoreProject == "" {
			return errors.New("STORE_PROJECT environment variable is required")
		}
	case DriverPostgres:
		if c.StoreURI == "" {
			return errors.New("STORE_URI environment variable is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of %s, %s, %s; got %q", DriverMongo, DriverPostgres, DriverMemory, c.StoreDriver)
	}

	return nil
}

func (c Config) IsDev() bool {
	return c.Env == "dev"
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer: %w", key, err)
		}

		return num, nil
	}
	return fallback, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%s must be a duration: %w", key, err)
		}

		return d, nil
	}
	return fallback, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
