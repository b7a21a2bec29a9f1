package ratelimiter

import (
	"hash/fnv"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/unada-gw/trustform/pkg/clientip"
	"github.com/unada-gw/trustform/pkg/logger"
)

// maxKeyLength bounds storage keys; longer composites are hashed.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// Static puts every request in the same named bucket. Combined with
// ByClientIP it gives each endpoint its own per-client budget.
func Static(name string) KeyFunc {
	return func(*http.Request) string { return name }
}

// ByClientIP keys on the address stored by clientip.Middleware, falling
// back to the TCP peer.
func ByClientIP() KeyFunc {
	return func(r *http.Request) string {
		if ip := clientip.FromContext(r.Context()); ip != "" {
			return ip
		}
		return r.RemoteAddr
	}
}

// Composite joins the non-empty keys of keyFuncs with ':'. Results longer
// than 64 bytes are replaced by their FNV-1a hash.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

type middlewareOptions struct {
	denied func(w http.ResponseWriter, r *http.Request, res *Result)
	log    *slog.Logger
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

// WithDeniedHandler renders denied requests. Rate limit headers are
// already set when it runs. The default writes a plain 429.
func WithDeniedHandler(fn func(w http.ResponseWriter, r *http.Request, res *Result)) MiddlewareOption {
	return func(o *middlewareOptions) {
		if fn != nil {
			o.denied = fn
		}
	}
}

// WithLogger logs store failures and rejected requests.
func WithLogger(log *slog.Logger) MiddlewareOption {
	return func(o *middlewareOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// Middleware limits requests per key. When the store fails the request is
// served anyway.
func Middleware(b *Bucket, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := &middlewareOptions{
		denied: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)

			res, err := b.Allow(r.Context(), key)
			if err != nil {
				o.log.WarnContext(r.Context(), "rate limit check failed",
					logger.Component("ratelimiter"), logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				if wait := res.RetryAfter(b.now()); wait > 0 {
					h.Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
				o.log.InfoContext(r.Context(), "rate limit exceeded",
					logger.Component("ratelimiter"), slog.String("key", key))
				o.denied(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
