package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultDotenv = ".env"

type options struct {
	dotenv      []string
	optional    bool
	prefix      string
	environment map[string]string
}

// Option adjusts how Load resolves variables.
type Option func(*options)

// WithDotenv reads the given files instead of the default ".env". Missing
// files are an error once listed explicitly.
func WithDotenv(files ...string) Option {
	return func(o *options) {
		o.dotenv = files
		o.optional = false
	}
}

// WithoutDotenv skips dotenv files entirely.
func WithoutDotenv() Option {
	return func(o *options) {
		o.dotenv = nil
	}
}

// WithPrefix only considers variables starting with prefix, which is
// stripped before matching env tags.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvironment replaces the process environment as the variable source.
// Dotenv values still fill keys the map does not set.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) { o.environment = vars }
}

// Load parses configuration of type T from the environment, overlaid on any
// dotenv files. Process variables always win over dotenv values.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//		DSN  string `env:"PG_CONN_URL,required"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	o := &options{dotenv: []string{defaultDotenv}, optional: true}
	for _, opt := range opts {
		opt(o)
	}

	vars, err := o.resolve()
	if err != nil {
		var zero T
		return zero, err
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{
		Environment: vars,
		Prefix:      o.prefix,
	})
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load for main packages where bad configuration must stop the
// process.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func (o *options) resolve() (map[string]string, error) {
	vars := o.environment
	if vars == nil {
		vars = environMap(os.Environ())
	} else {
		vars = copyMap(vars)
	}

	for _, file := range o.dotenv {
		fileVars, err := godotenv.Read(file)
		if err != nil {
			if o.optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingDotenv, fmt.Errorf("%s: %w", file, err))
		}
		for k, v := range fileVars {
			if _, set := vars[k]; !set {
				vars[k] = v
			}
		}
	}
	return vars, nil
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
