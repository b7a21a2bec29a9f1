package trusted

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/unada-gw/trustform/pkg/form"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/validator"
)

const maxFacebookIDLength = 64

// Service registers and looks up trusted users.
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

// WithClock replaces time.Now for last-access stamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a Service. engine validates registrations and must
// define the facebook_id and mac_address fields.
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
	s.log = s.log.With(logger.Component("trusted"))
	return s
}

// Register validates a submitted registration form and stores the user.
// A user already registered keeps their stored MAC and last access; the
// stored record is returned either way and created reports which case
// applied.
func (s *Service) Register(ctx context.Context, values url.Values) (TrustedUser, bool, error) {
	if err := s.engine.ValidateValues(values); err != nil {
		return TrustedUser{}, false, err
	}
	u, err := s.fromValues(values)
	if err != nil {
		return TrustedUser{}, false, err
	}

	stored, err := s.store.Insert(ctx, u)
	if err != nil {
		return TrustedUser{}, false, err
	}
	created := stored.MACAddress == u.MACAddress && stored.LastAccess.Equal(u.LastAccess)

	s.log.InfoContext(ctx, "trusted user registered",
		logger.FacebookID(stored.FacebookID),
		logger.MAC(stored.MACAddress),
		slog.Bool("created", created),
	)
	return stored, created, nil
}

// RegisterAll validates every registration before storing any of them.
// Validation failures are reported together, each field prefixed with the
// index of its registration ("2.mac_address"). Users already registered
// are kept as they are.
func (s *Service) RegisterAll(ctx context.Context, batch []url.Values) (int, error) {
	var (
		users = make([]TrustedUser, 0, len(batch))
		errs  validator.ValidationErrors
	)
	for i, values := range batch {
		err := s.engine.ValidateValues(values)
		var u TrustedUser
		if err == nil {
			u, err = s.fromValues(values)
		}
		if err == nil {
			users = append(users, u)
			continue
		}
		ve := validator.ExtractValidationErrors(err)
		if ve == nil {
			return 0, err
		}
		for _, e := range ve {
			e.Field = fmt.Sprintf("%d.%s", i, e.Field)
			errs.Add(e)
		}
	}
	if !errs.IsEmpty() {
		return 0, errs
	}
	if len(users) == 0 {
		return 0, nil
	}

	if err := s.store.InsertAll(ctx, users); err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "trusted users registered", slog.Int("count", len(users)))
	return len(users), nil
}

// Touch stamps the current time as the last access of the user owning mac.
func (s *Service) Touch(ctx context.Context, mac string) (TrustedUser, error) {
	u, err := s.Lookup(ctx, mac)
	if err != nil {
		return TrustedUser{}, err
	}

	u.LastAccess = s.stamp()
	if err := s.store.Update(ctx, u); err != nil {
		return TrustedUser{}, err
	}

	s.log.DebugContext(ctx, "trusted user seen", logger.FacebookID(u.FacebookID), logger.MAC(u.MACAddress))
	return u, nil
}

// Lookup finds the user registered with mac, in either delimiter form.
func (s *Service) Lookup(ctx context.Context, mac string) (TrustedUser, error) {
	normalized, err := normalizeMAC(mac)
	if err != nil {
		return TrustedUser{}, err
	}
	return s.store.FindByMAC(ctx, normalized)
}

// List returns every trusted user ordered by Facebook ID.
func (s *Service) List(ctx context.Context) ([]TrustedUser, error) {
	return s.store.List(ctx)
}

// Remove forgets the user with facebookID.
func (s *Service) Remove(ctx context.Context, facebookID string) error {
	if err := validator.Apply(
		validator.Required("facebook_id", facebookID),
		validator.MaxLen("facebook_id", facebookID, maxFacebookIDLength),
	); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, facebookID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "trusted user removed", logger.FacebookID(facebookID))
	return nil
}

func (s *Service) fromValues(values url.Values) (TrustedUser, error) {
	mac, err := normalizeMAC(values.Get("mac_address"))
	if err != nil {
		return TrustedUser{}, err
	}
	return TrustedUser{
		FacebookID: strings.TrimSpace(values.Get("facebook_id")),
		MACAddress: mac,
		LastAccess: s.stamp(),
	}, nil
}

// stamp is the current time at the precision Postgres keeps.
func (s *Service) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func normalizeMAC(mac string) (string, error) {
	mac = strings.TrimSpace(mac)
	if err := validator.Apply(validator.ValidMAC("mac_address", mac)); err != nil {
		return "", err
	}
	return validator.NormalizeMAC(mac)
}
