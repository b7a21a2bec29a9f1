// Package forms holds the gateway's form definitions and turns them into
// ready-to-use engines.
package forms

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/unada-gw/trustform/pkg/form"
	"github.com/unada-gw/trustform/pkg/validator"
)

// Form names shipped in the embedded schema.
const (
	TrustedUser   = "trusted_user"
	GatewayConfig = "gateway_config"
)

//go:embed forms.yaml
var defaultSchema []byte

// ErrUnknownForm is returned for form names the catalog does not define.
var ErrUnknownForm = errors.New("unknown form")

// Catalogue is a set of named engines, all bound to the same registry.
type Catalogue struct {
	engines map[string]*form.Engine
}

// Load reads the schema at path, or the embedded schema when path is
// empty, and builds an engine per form. Any rule the registry does not know
// fails the whole load.
func Load(path string, reg *validator.Registry) (*Catalogue, error) {
	var r io.Reader = bytes.NewReader(defaultSchema)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open form schema: %w", err)
		}
		defer f.Close()
		r = f
	}
	return Parse(r, reg)
}

// Parse is Load for an already opened schema.
func Parse(r io.Reader, reg *validator.Registry) (*Catalogue, error) {
	schemas, err := form.LoadSchemas(r)
	if err != nil {
		return nil, err
	}

	c := &Catalogue{engines: make(map[string]*form.Engine, len(schemas))}
	for name, s := range schemas {
		e, err := form.New(s.Config(reg))
		if err != nil {
			return nil, fmt.Errorf("form %q: %w", name, err)
		}
		c.engines[name] = e
	}
	return c, nil
}

// Engine returns the engine for the named form.
func (c *Catalogue) Engine(name string) (*form.Engine, error) {
	e, ok := c.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return e, nil
}

// MustEngine is Engine for forms the application cannot run without.
func (c *Catalogue) MustEngine(name string) *form.Engine {
	e, err := c.Engine(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Names lists the loaded forms, sorted.
func (c *Catalogue) Names() []string {
	return slices.Sorted(maps.Keys(c.engines))
}
