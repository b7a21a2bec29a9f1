package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unada-gw/trustform/pkg/clientip"
	"github.com/unada-gw/trustform/pkg/environment"
	"github.com/unada-gw/trustform/pkg/httpserver"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/metrics"
	"github.com/unada-gw/trustform/pkg/requestid"
)

// Mountable is a feature exposing its own router.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects what Router mounts. Nil modules are skipped.
type RouterOptions struct {
	Env      environment.Environment
	Logger   *slog.Logger
	ClientIP *clientip.Resolver
	Metrics  *metrics.Metrics

	TrustedUsers Mountable
	Gateway      Mountable
	Rules        Mountable

	// Limit, when set, returns the rate limiting middleware for one module.
	Limit func(scope string) func(http.Handler) http.Handler

	// Readiness checks run by /health/ready.
	Readiness []httpserver.Check
}

// Router builds the HTTP surface of the service:
//
//	/health/live, /health/ready
//	/metrics         Prometheus metrics, when enabled
//	/trusted-users   registration and lookup of trusted users
//	/gateway/config  the gateway configuration form
//	/rules           single-rule checks
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware(),
		clientip.Middleware(opts.ClientIP),
		environment.Middleware(opts.Env),
		accessLog(log),
		middleware.Recoverer,
	)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Route("/health", func(h chi.Router) {
		h.Get("/live", httpserver.Liveness())
		h.Get("/ready", httpserver.Readiness(log, opts.Readiness...))
	})

	mount := func(pattern, scope string, m Mountable) {
		if m == nil {
			return
		}
		r.Group(func(g chi.Router) {
			if opts.Limit != nil {
				g.Use(opts.Limit(scope))
			}
			g.Mount(pattern, m.Handle())
		})
	}
	mount("/trusted-users", "trusted-users", opts.TrustedUsers)
	mount("/gateway/config", "gateway", opts.Gateway)
	mount("/rules", "rules", opts.Rules)

	return r
}

// accessLog writes one record per request. Health probes log at debug.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if strings.HasPrefix(r.URL.Path, "/health/") {
				level = slog.LevelDebug
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
