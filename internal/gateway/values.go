package gateway

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/unada-gw/trustform/pkg/validator"
)

// FromValues converts an already validated form into a Configuration.
// Missing numbers are zero and missing flags are false, which is how
// browsers submit unchecked boxes. The gateway's own address and MAC
// identify it, so those two are checked again whatever form was used.
func FromValues(values url.Values) (Configuration, error) {
	p := valueParser{values: values}

	if err := validator.Apply(
		validator.ValidIPv4("ip_address", p.text("ip_address")),
		validator.ValidMAC("mac_address", p.text("mac_address")),
	); err != nil {
		return Configuration{}, err
	}

	cfg := Configuration{
		IPAddress:          p.text("ip_address"),
		Port:               int(p.integer("port", 32)),
		Latitude:           p.float("latitude"),
		Longitude:          p.float("longitude"),
		OpenSSID:           p.text("open_ssid"),
		PrivateSSID:        p.text("private_ssid"),
		PrivatePassword:    values.Get("private_password"),
		SocialInterval:     p.integer("social_interval", 64),
		OverlayInterval:    p.integer("overlay_interval", 64),
		PredictionInterval: p.integer("prediction_interval", 64),
		ChunkSize:          p.integer("chunk_size", 64),
		Bootstrap:          p.flag("bootstrap"),
		SocialPrediction:   p.flag("social_prediction"),
		OverlayPrediction:  p.flag("overlay_prediction"),
	}
	if p.err != nil {
		return Configuration{}, p.err
	}

	mac, err := validator.NormalizeMAC(p.text("mac_address"))
	if err != nil {
		return Configuration{}, fmt.Errorf("mac_address: %w", err)
	}
	cfg.MACAddress = mac
	return cfg, nil
}

// valueParser keeps the first conversion error.
type valueParser struct {
	values url.Values
	err    error
}

func (p *valueParser) text(key string) string {
	return strings.TrimSpace(p.values.Get(key))
}

func (p *valueParser) integer(key string, bits int) int64 {
	raw := p.text(key)
	if raw == "" || p.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, bits)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return n
}

func (p *valueParser) float(key string) float64 {
	raw := p.text(key)
	if raw == "" || p.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return f
}

func (p *valueParser) flag(key string) bool {
	raw := p.text(key)
	if raw == "" || p.err != nil {
		return false
	}
	b, ok := validator.ParseBool(raw)
	if !ok {
		p.err = fmt.Errorf("%s: not a boolean: %q", key, raw)
	}
	return b
}
