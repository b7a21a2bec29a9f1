package form_test

import (
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/pkg/form"
	"github.com/unada-gw/trustform/pkg/validator"
)

func newEngine(t *testing.T, cfg form.Config) *form.Engine {
	t.Helper()
	if cfg.Registry == nil {
		cfg.Registry = validator.DefaultRegistry()
	}
	e, err := form.New(cfg)
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a registry", func(t *testing.T) {
		t.Parallel()
		_, err := form.New(form.Config{})
		assert.ErrorIs(t, err, form.ErrNilRegistry)
	})

	t.Run("rejects unknown rules", func(t *testing.T) {
		t.Parallel()
		_, err := form.New(form.Config{
			Registry: validator.DefaultRegistry(),
			Fields:   []form.Field{{Name: "mac_address", Rules: form.MustParseRules("required|macaddr")}},
		})
		assert.ErrorIs(t, err, form.ErrUnknownRule)
		assert.Contains(t, err.Error(), "macaddr")
	})

	t.Run("rejects unnamed fields", func(t *testing.T) {
		t.Parallel()
		_, err := form.New(form.Config{
			Registry: validator.DefaultRegistry(),
			Fields:   []form.Field{{Rules: form.MustParseRules("required")}},
		})
		assert.ErrorIs(t, err, form.ErrEmptyFieldName)
	})

	t.Run("custom rules come from the supplied registry only", func(t *testing.T) {
		t.Parallel()
		reg, err := validator.DefaultRegistry().Extend(validator.Definition{
			Name:  "vlan",
			Check: validator.Integer,
		})
		require.NoError(t, err)

		fields := []form.Field{{Name: "vlan", Rules: form.MustParseRules("vlan")}}
		_, err = form.New(form.Config{Registry: reg, Fields: fields})
		require.NoError(t, err)

		_, err = form.New(form.Config{Registry: validator.DefaultRegistry(), Fields: fields})
		assert.ErrorIs(t, err, form.ErrUnknownRule)
	})
}

func TestEngine_Validate(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, form.Config{
		Fields: []form.Field{
			{Name: "mac_address", Rules: form.MustParseRules("mac")},
		},
	})

	cases := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty", "", true},
		{"colon", "00:11:22:33:44:55", true},
		{"hyphen", "00-11-22-33-44-55", true},
		{"short octet", "00:11:22:33:44:5", false},
		{"non hex", "GG:11:22:33:44:55", false},
		{"no delimiters", "001122334455", false},
		{"mixed delimiters", "00:11-22:33-44:55", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := engine.Validate(map[string]string{"mac_address": tc.value})
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			verrs := validator.ExtractValidationErrors(err)
			require.Len(t, verrs, 1)
			assert.Equal(t, "mac_address", verrs[0].Field)
			assert.Equal(t, "mac", verrs[0].Rule)
			assert.Equal(t, "must be a valid MAC address", verrs[0].Message)
		})
	}
}

func TestEngine_Messages(t *testing.T) {
	t.Parallel()

	t.Run("configured message wins", func(t *testing.T) {
		t.Parallel()
		engine := newEngine(t, form.Config{
			Fields: []form.Field{{
				Name:  "mac_address",
				Rules: form.WithMessage(form.MustParseRules("required|mac"), "mac", "Please enter a valid MAC address"),
			}},
		})

		err := engine.Validate(map[string]string{"mac_address": "nope"})
		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "Please enter a valid MAC address", verrs[0].Message)
	})

	t.Run("engine default applies when definition has none", func(t *testing.T) {
		t.Parallel()
		reg := validator.MustNewRegistry(validator.Definition{Name: "mac", Check: validator.MACAddress})
		engine := newEngine(t, form.Config{
			Registry:       reg,
			DefaultMessage: "check this field",
			Fields:         []form.Field{{Name: "mac", Rules: form.MustParseRules("mac")}},
		})

		err := engine.Validate(map[string]string{"mac": "nope"})
		assert.Equal(t, []string{"check this field"}, validator.ExtractValidationErrors(err).Get("mac"))
	})

	t.Run("hard fallback", func(t *testing.T) {
		t.Parallel()
		reg := validator.MustNewRegistry(validator.Definition{Name: "mac", Check: validator.MACAddress})
		engine := newEngine(t, form.Config{
			Registry: reg,
			Fields:   []form.Field{{Name: "mac", Rules: form.MustParseRules("mac")}},
		})

		err := engine.Validate(map[string]string{"mac": "nope"})
		assert.Equal(t, []string{"is invalid"}, validator.ExtractValidationErrors(err).Get("mac"))
	})
}

func TestEngine_RulesAreIndependent(t *testing.T) {
	t.Parallel()

	fields := []form.Field{
		{Name: "facebook_id", Rules: form.MustParseRules("required|digits|max:5")},
		{Name: "mac_address", Rules: form.MustParseRules("required|mac")},
	}

	t.Run("all failures reported without bail", func(t *testing.T) {
		t.Parallel()
		engine := newEngine(t, form.Config{Fields: fields})

		err := engine.Validate(map[string]string{"facebook_id": "abcdef"})
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"facebook_id", "mac_address"}, verrs.Fields())
		assert.Len(t, verrs.GetErrors("facebook_id"), 2)
		assert.Len(t, verrs.GetErrors("mac_address"), 1)
		assert.Equal(t, "required", verrs.GetErrors("mac_address")[0].Rule)
	})

	t.Run("bail stops at first failure per field", func(t *testing.T) {
		t.Parallel()
		engine := newEngine(t, form.Config{Fields: fields, Bail: true})

		err := engine.Validate(map[string]string{"facebook_id": "abcdef"})
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		require.Len(t, verrs.GetErrors("facebook_id"), 1)
		assert.Equal(t, "digits", verrs.GetErrors("facebook_id")[0].Rule)
	})
}

func TestEngine_ValidateValues(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, form.Config{
		Fields: []form.Field{{Name: "mac_address", Rules: form.MustParseRules("required|mac")}},
	})

	assert.NoError(t, engine.ValidateValues(url.Values{"mac_address": {"00:11:22:33:44:55", "junk"}}))
	assert.Error(t, engine.ValidateValues(url.Values{"other": {"00:11:22:33:44:55"}}))
	assert.Equal(t, []string{"mac_address"}, engine.Fields())
}

func TestEngine_Concurrent(t *testing.T) {
	t.Parallel()

	engine := newEngine(t, form.Config{
		Fields: []form.Field{{Name: "mac_address", Rules: form.MustParseRules("required|mac")}},
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mac := "00:11:22:33:44:55"
			if i%3 == 0 {
				mac = "00:11-22:33-44:55"
			}
			err := engine.Validate(map[string]string{"mac_address": mac})
			assert.Equal(t, i%3 == 0, err != nil)
		}(i)
	}
	wg.Wait()
}
