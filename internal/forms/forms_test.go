package forms_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/internal/forms"
	"github.com/unada-gw/trustform/pkg/form"
	"github.com/unada-gw/trustform/pkg/validator"
)

func TestLoad_Embedded(t *testing.T) {
	t.Parallel()

	cat, err := forms.Load("", validator.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{forms.GatewayConfig, forms.TrustedUser}, cat.Names())

	t.Run("trusted user", func(t *testing.T) {
		t.Parallel()
		e := cat.MustEngine(forms.TrustedUser)

		assert.NoError(t, e.Validate(map[string]string{
			"facebook_id": "100004321",
			"mac_address": "00-11-22-33-44-55",
		}))

		err := e.Validate(map[string]string{"facebook_id": "100004321", "mac_address": "00:11-22:33-44:55"})
		msgs := validator.ExtractValidationErrors(err).Get("mac_address")
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "six hex pairs")
	})

	t.Run("gateway config", func(t *testing.T) {
		t.Parallel()
		e := cat.MustEngine(forms.GatewayConfig)

		valid := map[string]string{
			"ip_address":       "192.168.1.10",
			"mac_address":      "aa:bb:cc:dd:ee:ff",
			"port":             "8080",
			"latitude":         "46.0569",
			"longitude":        "14.5058",
			"open_ssid":        "unada-open",
			"private_ssid":     "unada-private",
			"private_password": "correcthorse",
			"social_interval":  "3600",
			"bootstrap":        "on",
		}
		assert.NoError(t, e.Validate(valid))

		invalid := map[string]string{
			"ip_address":       "300.1.1.1",
			"mac_address":      "aa:bb:cc:dd:ee:ff",
			"port":             "0",
			"latitude":         "91",
			"open_ssid":        "unada-open",
			"private_ssid":     "unada-private",
			"private_password": "short",
			"chunk_size":       "-1",
			"bootstrap":        "maybe",
		}
		verrs := validator.ExtractValidationErrors(e.Validate(invalid))
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"ip_address", "port", "latitude", "private_password", "chunk_size", "bootstrap"}, verrs.Fields())
		assert.Equal(t, []string{"WPA passphrases need at least 8 characters"}, verrs.Get("private_password"))
	})
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "forms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("forms:\n  ping:\n    fields:\n      - field: host\n        rules: required|ipv4\n"), 0o600))

	cat, err := forms.Load(path, validator.DefaultRegistry())
	require.NoError(t, err)
	_, err = cat.Engine("ping")
	require.NoError(t, err)

	_, err = cat.Engine(forms.TrustedUser)
	assert.ErrorIs(t, err, forms.ErrUnknownForm)

	_, err = forms.Load(filepath.Join(t.TempDir(), "missing.yaml"), validator.DefaultRegistry())
	assert.Error(t, err)
}

func TestParse_UnknownRule(t *testing.T) {
	t.Parallel()

	_, err := forms.Parse(strings.NewReader("forms:\n  f:\n    fields:\n      - field: a\n        rules: hostname\n"), validator.DefaultRegistry())
	assert.ErrorIs(t, err, form.ErrUnknownRule)
}
