package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/unada-gw/trustform/pkg/environment"
	"github.com/unada-gw/trustform/pkg/httpserver"
	"github.com/unada-gw/trustform/pkg/pg"
	"github.com/unada-gw/trustform/pkg/ratelimiter"
	"github.com/unada-gw/trustform/pkg/redis"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// ErrInvalidConfig wraps every configuration check failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is loaded with config.Load.
type Config struct {
	Env         environment.Environment `env:"APP_ENV" envDefault:"development"`
	ServiceName string                  `env:"SERVICE_NAME" envDefault:"trustform"`

	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	CacheEnabled  bool          `env:"CACHE_ENABLED" envDefault:"false"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// FormsSchemaPath overrides the embedded form definitions.
	FormsSchemaPath string `env:"FORMS_SCHEMA_PATH"`

	// TrustedProxies may set X-Forwarded-For; everyone else is identified by
	// the TCP peer address.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// MetricsEnabled serves Prometheus metrics on /metrics.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	RateLimitEnabled bool               `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimit        ratelimiter.Config `envPrefix:"RATE_LIMIT_"`

	HTTP  httpserver.Config `envPrefix:"HTTP_"`
	PG    pg.Config         `envPrefix:"PG_"`
	Redis redis.Config      `envPrefix:"REDIS_"`
}

// Validate rejects combinations that cannot start.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.PG.ConnectionString == "" {
			return fmt.Errorf("%w: PG_CONN_URL is required with the postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.StorageDriver)
	}
	if c.CacheEnabled && c.Redis.ConnectionURL == "" {
		return fmt.Errorf("%w: REDIS_URL is required when the cache is enabled", ErrInvalidConfig)
	}
	if c.RateLimitEnabled && (c.RateLimit.Capacity <= 0 || c.RateLimit.RefillRate <= 0 || c.RateLimit.RefillInterval <= 0) {
		return fmt.Errorf("%w: RATE_LIMIT_CAPACITY, RATE_LIMIT_REFILL_RATE and RATE_LIMIT_REFILL_INTERVAL must be positive", ErrInvalidConfig)
	}
	return nil
}
