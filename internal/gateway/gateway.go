// Package gateway stores the single configuration record of a uNaDa
// gateway: its network identity, location, Wi-Fi networks and the timers of
// its social and overlay prediction jobs.
package gateway

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Load before the first Save.
var ErrNotFound = errors.New("gateway is not configured")

// Configuration is the gateway's settings. Intervals are in seconds.
type Configuration struct {
	IPAddress          string    `json:"ip_address"`
	MACAddress         string    `json:"mac_address"`
	Port               int       `json:"port"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	OpenSSID           string    `json:"open_ssid"`
	PrivateSSID        string    `json:"private_ssid"`
	PrivatePassword    string    `json:"private_password"`
	SocialInterval     int64     `json:"social_interval"`
	OverlayInterval    int64     `json:"overlay_interval"`
	PredictionInterval int64     `json:"prediction_interval"`
	ChunkSize          int64     `json:"chunk_size"`
	Bootstrap          bool      `json:"bootstrap"`
	SocialPrediction   bool      `json:"social_prediction"`
	OverlayPrediction  bool      `json:"overlay_prediction"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Store holds at most one Configuration.
type Store interface {
	// Save replaces the stored configuration.
	Save(ctx context.Context, cfg Configuration) error
	Load(ctx context.Context) (Configuration, error)
}
