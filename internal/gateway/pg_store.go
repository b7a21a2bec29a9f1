package gateway

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/unada-gw/trustform/pkg/pg"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGStore keeps the configuration as the only row of
// gateway_configuration.
type PGStore struct {
	db querier
}

// NewPGStore wraps a pgx pool or transaction.
func NewPGStore(db querier) *PGStore {
	return &PGStore{db: db}
}

const (
	saveConfigSQL = `
INSERT INTO gateway_configuration (
	id, ip_address, mac_address, port, latitude, longitude,
	open_ssid, private_ssid, private_password,
	social_interval, overlay_interval, prediction_interval, chunk_size,
	bootstrap, social_prediction, overlay_prediction, updated_at
) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (id) DO UPDATE SET
	ip_address = EXCLUDED.ip_address,
	mac_address = EXCLUDED.mac_address,
	port = EXCLUDED.port,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	open_ssid = EXCLUDED.open_ssid,
	private_ssid = EXCLUDED.private_ssid,
	private_password = EXCLUDED.private_password,
	social_interval = EXCLUDED.social_interval,
	overlay_interval = EXCLUDED.overlay_interval,
	prediction_interval = EXCLUDED.prediction_interval,
	chunk_size = EXCLUDED.chunk_size,
	bootstrap = EXCLUDED.bootstrap,
	social_prediction = EXCLUDED.social_prediction,
	overlay_prediction = EXCLUDED.overlay_prediction,
	updated_at = EXCLUDED.updated_at`

	loadConfigSQL = `
SELECT ip_address, mac_address, port, latitude, longitude,
	open_ssid, private_ssid, private_password,
	social_interval, overlay_interval, prediction_interval, chunk_size,
	bootstrap, social_prediction, overlay_prediction, updated_at
FROM gateway_configuration
WHERE id = 1`
)

func (s *PGStore) Save(ctx context.Context, c Configuration) error {
	_, err := s.db.Exec(ctx, saveConfigSQL,
		c.IPAddress, c.MACAddress, c.Port, c.Latitude, c.Longitude,
		c.OpenSSID, c.PrivateSSID, c.PrivatePassword,
		c.SocialInterval, c.OverlayInterval, c.PredictionInterval, c.ChunkSize,
		c.Bootstrap, c.SocialPrediction, c.OverlayPrediction, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save gateway configuration: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context) (Configuration, error) {
	var c Configuration
	err := s.db.QueryRow(ctx, loadConfigSQL).Scan(
		&c.IPAddress, &c.MACAddress, &c.Port, &c.Latitude, &c.Longitude,
		&c.OpenSSID, &c.PrivateSSID, &c.PrivatePassword,
		&c.SocialInterval, &c.OverlayInterval, &c.PredictionInterval, &c.ChunkSize,
		&c.Bootstrap, &c.SocialPrediction, &c.OverlayPrediction, &c.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Configuration{}, ErrNotFound
		}
		return Configuration{}, fmt.Errorf("load gateway configuration: %w", err)
	}
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
