package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"merchops/internal/domain"
)

// Config is the explicit process configuration, constructed once at
// startup. Validation happens here, eagerly, so a misconfigured
// process fails before serving traffic instead of at first use.
type Config struct {
	Port           string
	AllowedOrigins []string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string

	SessionSecret string
	SessionTTL    time.Duration

	Shopify         domain.ShopifyCredentials
	CacheTTL        time.Duration
	LinkConcurrency int64
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           def(os.Getenv("PORT"), "8080"),
		AllowedOrigins: split(os.Getenv("ALLOWED_ORIGINS"), ",", []string{"*"}),
		MongoURI:       def(os.Getenv("MONGODB_URI"), "mongodb://localhost:27017"),
		MongoDatabase:  def(os.Getenv("MONGODB_DATABASE"), "merchops"),
		RedisAddr:      def(os.Getenv("REDIS_ADDR"), "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		Shopify: domain.ShopifyCredentials{
			APIKey:    os.Getenv("SHOPIFY_API_KEY"),
			APISecret: os.Getenv("SHOPIFY_API_SECRET"),
			StoreURL:  os.Getenv("SHOPIFY_STORE_URL"),
		},
	}

	var err error
	if cfg.SessionTTL, err = duration(os.Getenv("SESSION_TTL"), 24*time.Hour); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.CacheTTL, err = duration(os.Getenv("CACHE_TTL"), 5*time.Minute); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.LinkConcurrency, err = integer(os.Getenv("LINK_CONCURRENCY"), 1); err != nil {
		return nil, fmt.Errorf("invalid LINK_CONCURRENCY: %w", err)
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	if err := cfg.Shopify.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func def(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func split(s, sep string, d []string) []string {
	if s == "" {
		return d
	}
	return strings.Split(s, sep)
}

func duration(v string, d time.Duration) (time.Duration, error) {
	if v == "" {
		return d, nil
	}
	return time.ParseDuration(v)
}

func integer(v string, d int64) (int64, error) {
	if v == "" {
		return d, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
