package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	SentryDSN string `env:"SENTRY_DSN"`

	// CORSAllowOrigins is a comma-separated list; "*" allows every origin.
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS, default=http://localhost:5173"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Events EventsConfig
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET, required"`
	SigninTokenTTL    time.Duration `env:"SIGNIN_TOKEN_TTL,    default=720h"`
	FederatedTokenTTL time.Duration `env:"FEDERATED_TOKEN_TTL, default=24h"`
	// RateLimit is the sustained number of auth requests per second allowed
	// per client IP; RateBurst the bucket size.
	RateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`
	RateBurst int     `env:"AUTH_RATE_BURST, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=real_estate"`
}

// RedisConfig configures the homepage cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR, default=localhost:6379"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB,   default=0"`
	HomepageTTL time.Duration `env:"HOMEPAGE_CACHE_TTL, default=5m"`
}

// EventsConfig configures the listing event pipeline. Without AMQPURL events
// are only logged.
type EventsConfig struct {
	AMQPURL string `env:"AMQP_URL"`
	Queue   string `env:"AMQP_QUEUE,    default=listing.events"`
	Workers int    `env:"EVENT_WORKERS, default=4"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// AllowOrigins splits CORSAllowOrigins into its entries.
func (c *Config) AllowOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load reads configuration from environment variables using go-envconfig.
// Variables from a .env file in the working directory are loaded first and
// never override the real environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
