package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server.
type Option func(*options)

// Timeouts groups the http.Server timeouts. Zero fields are left unchanged.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

// WithAddr sets the listen address. It panics on an empty address.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr: addr cannot be empty")
	}
	return func(o *options) { o.addr = addr }
}

// WithTimeouts overrides the non-zero timeouts of t.
func WithTimeouts(t Timeouts) Option {
	return func(o *options) {
		if t.ReadHeader > 0 {
			o.timeouts.ReadHeader = t.ReadHeader
		}
		if t.Read > 0 {
			o.timeouts.Read = t.Read
		}
		if t.Write > 0 {
			o.timeouts.Write = t.Write
		}
		if t.Idle > 0 {
			o.timeouts.Idle = t.Idle
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown. It panics on d <= 0.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithShutdownTimeout: duration must be > 0")
	}
	return func(o *options) { o.shutdownTimeout = d }
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithShutdownHook registers fn to run after the listener closes, in
// registration order. Typical hooks close database pools.
func WithShutdownHook(fn func()) Option {
	if fn == nil {
		panic("httpserver: WithShutdownHook: nil hook")
	}
	return func(o *options) { o.hooks = append(o.hooks, fn) }
}
