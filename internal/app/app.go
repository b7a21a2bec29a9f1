// Package app assembles the trustform service from its configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unada-gw/trustform/handler"
	"github.com/unada-gw/trustform/internal/db"
	"github.com/unada-gw/trustform/internal/forms"
	"github.com/unada-gw/trustform/internal/gateway"
	"github.com/unada-gw/trustform/internal/rulecheck"
	"github.com/unada-gw/trustform/internal/trusted"
	"github.com/unada-gw/trustform/pkg/clientip"
	"github.com/unada-gw/trustform/pkg/httpserver"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/metrics"
	"github.com/unada-gw/trustform/pkg/pg"
	"github.com/unada-gw/trustform/pkg/ratelimiter"
	"github.com/unada-gw/trustform/pkg/redis"
	"github.com/unada-gw/trustform/pkg/requestid"
	"github.com/unada-gw/trustform/pkg/validator"
)

// App owns the service's connections and its HTTP handler.
type App struct {
	cfg     Config
	log     *slog.Logger
	handler http.Handler
	checks  []httpserver.Check
	redis   *goredis.Client
	metrics *metrics.Metrics
	closers []func()
}

// New validates cfg, opens the configured storage and builds the router.
// The registry is the only source of validation rules; pass nil for the
// built-in set.
func New(ctx context.Context, cfg Config, reg *validator.Registry, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = validator.DefaultRegistry()
	}
	if log == nil {
		log = logger.Discard()
	}

	catalogue, err := forms.Load(cfg.FormsSchemaPath, reg)
	if err != nil {
		return nil, fmt.Errorf("load forms: %w", err)
	}
	trustedForm, err := catalogue.Engine(forms.TrustedUser)
	if err != nil {
		return nil, err
	}
	gatewayForm, err := catalogue.Engine(forms.GatewayConfig)
	if err != nil {
		return nil, err
	}

	resolver, err := clientip.NewResolver(cfg.TrustedProxies...)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: log}
	if cfg.MetricsEnabled {
		a.metrics = metrics.New(cfg.ServiceName)
	}

	trustedStore, gatewayStore, err := a.openStores(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	limit, err := a.rateLimit()
	if err != nil {
		a.Close()
		return nil, err
	}

	errorHandler := a.countValidationFailures(handler.NewErrorHandler(log))
	trustedSvc := trusted.NewService(trustedStore, trustedForm, trusted.WithLogger(log))
	gatewaySvc := gateway.NewService(gatewayStore, gatewayForm, gateway.WithLogger(log))

	a.handler = Router(RouterOptions{
		Env:          cfg.Env,
		Logger:       log,
		ClientIP:     resolver,
		Metrics:      a.metrics,
		TrustedUsers: trusted.NewHTTP(trustedSvc, errorHandler),
		Gateway:      gateway.NewHTTP(gatewaySvc, errorHandler),
		Rules:        rulecheck.NewHTTP(reg, errorHandler, log),
		Limit:        limit,
		Readiness:    a.checks,
	})

	log.InfoContext(ctx, "application ready",
		slog.String("storage", cfg.StorageDriver),
		slog.Bool("cache", cfg.CacheEnabled),
		slog.Bool("rate_limit", cfg.RateLimitEnabled),
		slog.Bool("metrics", cfg.MetricsEnabled),
		slog.Any("forms", catalogue.Names()),
		logger.Count(len(reg.Names())),
	)
	return a, nil
}

func (a *App) openStores(ctx context.Context) (trusted.Store, gateway.Store, error) {
	var (
		trustedStore trusted.Store
		gatewayStore gateway.Store
	)

	switch a.cfg.StorageDriver {
	case StoragePostgres:
		pool, err := pg.Connect(ctx, a.cfg.PG)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, pool.Close)
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})

		if a.cfg.PG.AutoMigrate {
			if err := pg.Migrate(ctx, pool, db.Migrations(), a.cfg.PG, a.log); err != nil {
				return nil, nil, err
			}
		}
		trustedStore = trusted.NewPGStore(pool)
		gatewayStore = gateway.NewPGStore(pool)
	default:
		trustedStore = trusted.NewMemoryStore()
		gatewayStore = gateway.NewMemoryStore()
	}

	if a.cfg.CacheEnabled {
		client, err := redis.Connect(ctx, a.cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		a.redis = client
		a.closers = append(a.closers, func() {
			if err := client.Close(); err != nil {
				a.log.Warn("close redis client", logger.Error(err))
			}
		})
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
		trustedStore = trusted.NewCachedStore(trustedStore, client, a.cfg.CacheTTL, a.log)
	}

	return trustedStore, gatewayStore, nil
}

// rateLimit builds one bucket shared by every module, keyed per module and
// client. Buckets live in Redis when the cache is on so that several
// instances share them.
func (a *App) rateLimit() (func(scope string) func(http.Handler) http.Handler, error) {
	if !a.cfg.RateLimitEnabled {
		return nil, nil
	}

	var store ratelimiter.Store
	if a.redis != nil {
		store = ratelimiter.NewRedisStore(a.redis, "trustform:ratelimit:")
	} else {
		mem := ratelimiter.NewMemoryStore()
		a.closers = append(a.closers, mem.Close)
		store = mem
	}

	bucket, err := ratelimiter.NewBucket(store, a.cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	return func(scope string) func(http.Handler) http.Handler {
		denied := func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			if a.metrics != nil {
				a.metrics.RateLimited(scope)
			}
			detail := handler.ErrorDetail{
				Code:      handler.ErrTooManyRequests.Key,
				Message:   "too many requests, slow down",
				RequestID: requestid.FromContext(r.Context()),
			}
			if err := handler.JSONError(http.StatusTooManyRequests, detail).Render(w, r); err != nil {
				a.log.ErrorContext(r.Context(), "render rate limit response", logger.Error(err))
			}
		}
		return ratelimiter.Middleware(bucket,
			ratelimiter.Composite(ratelimiter.Static(scope), ratelimiter.ByClientIP()),
			ratelimiter.WithDeniedHandler(denied),
			ratelimiter.WithLogger(a.log),
		)
	}, nil
}

// countValidationFailures records every rejected field before next renders
// the error.
func (a *App) countValidationFailures(next handler.ErrorHandler[handler.Context]) handler.ErrorHandler[handler.Context] {
	if a.metrics == nil {
		return next
	}
	return func(ctx handler.Context, err error) {
		for _, ve := range validator.ExtractValidationErrors(err) {
			a.metrics.ValidationFailed(ve.Field, ve.Rule)
		}
		next(ctx, err)
	}
}

// Handler is the fully wired router.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP until ctx is cancelled or the process is signalled, then
// releases every connection.
func (a *App) Run(ctx context.Context) error {
	server := httpserver.NewFromConfig(a.cfg.HTTP,
		httpserver.WithLogger(a.log),
		httpserver.WithShutdownHook(a.Close),
	)
	return server.Run(ctx, a.handler)
}

// Close releases connections in reverse order of opening. It is safe to
// call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
