package gateway

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/unada-gw/trustform/pkg/form"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/validator"
)

// Service validates and persists the gateway configuration.
type Service struct {
	store  Store
	engine *form.Engine
	log    *slog.Logger
	now    func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock replaces time.Now for the UpdatedAt stamp.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a Service. engine validates the gateway_config form.
func NewService(store Store, engine *form.Engine, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		engine: engine,
		log:    logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("gateway"))
	return s
}

// Save validates the submitted settings form and replaces the stored
// configuration with it.
func (s *Service) Save(ctx context.Context, values url.Values) (Configuration, error) {
	if err := s.engine.ValidateValues(values); err != nil {
		return Configuration{}, err
	}

	cfg, err := FromValues(values)
	if err != nil {
		if !validator.IsValidationError(err) {
			s.log.ErrorContext(ctx, "form accepted a value the configuration cannot hold",
				logger.Form("gateway_config"), logger.Error(err))
		}
		return Configuration{}, err
	}
	cfg.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, cfg); err != nil {
		return Configuration{}, err
	}

	s.log.InfoContext(ctx, "gateway configuration saved",
		logger.MAC(cfg.MACAddress),
		slog.String("ip_address", cfg.IPAddress),
		slog.Int("port", cfg.Port),
	)
	return cfg, nil
}

// Get returns the saved configuration or ErrNotFound.
func (s *Service) Get(ctx context.Context) (Configuration, error) {
	return s.store.Load(ctx)
}
