package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// RuleOptions is the static configuration attached to one use of a rule.
//
// Message is metadata for the caller: it is what a form should display when
// the rule fails. Predicates never consult it. Args holds positional
// parameters for rules such as max:64; rules without parameters ignore it.
type RuleOptions struct {
	Message string   `yaml:"message" json:"message,omitempty"`
	Args    []string `yaml:"args" json:"args,omitempty"`
}

// Predicate decides whether value satisfies a rule. It must be pure.
type Predicate func(value string, opts RuleOptions) bool

// Definition is a named predicate plus the message shown when no per-use
// message is configured.
type Definition struct {
	Name           string
	Check          Predicate
	Message        string
	TranslationKey string
}

// Registry is an immutable rule-name to predicate mapping. Build it once at
// startup and hand it to whatever evaluates forms.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry builds a registry from defs. Empty names, nil predicates and
// duplicate names are rejected.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	if err := r.add(defs); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for package-level wiring where a bad
// definition is a programming error.
func MustNewRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Extend returns a new registry holding the receiver's rules plus defs.
// The receiver is left untouched.
func (r *Registry) Extend(defs ...Definition) (*Registry, error) {
	next := &Registry{defs: maps.Clone(r.defs)}
	if next.defs == nil {
		next.defs = make(map[string]Definition, len(defs))
	}
	if err := next.add(defs); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *Registry) add(defs []Definition) error {
	for _, def := range defs {
		if def.Name == "" || def.Check == nil {
			return fmt.Errorf("%w: %q", ErrInvalidDefinition, def.Name)
		}
		if _, exists := r.defs[def.Name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateRule, def.Name)
		}
		if def.TranslationKey == "" {
			def.TranslationKey = "validation." + def.Name
		}
		r.defs[def.Name] = def
	}
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered rule names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.defs))
}

// Evaluate runs the named rule against value.
func (r *Registry) Evaluate(name, value string, opts RuleOptions) (bool, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return def.Check(value, opts), nil
}

// Rule adapts a named rule into a Rule for use with Apply. The failure
// message is opts.Message when set, otherwise the definition's message.
func (r *Registry) Rule(field, name, value string, opts RuleOptions) (Rule, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return Rule{}, errors.Join(ErrUnknownRule, fmt.Errorf("rule %q for field %q", name, field))
	}

	message := opts.Message
	if message == "" {
		message = def.Message
	}

	return Rule{
		Check: func() bool { return def.Check(value, opts) },
		Error: ValidationError{
			Field:          field,
			Rule:           def.Name,
			Message:        message,
			TranslationKey: def.TranslationKey,
			TranslationValues: map[string]any{
				"field": field,
				"args":  opts.Args,
			},
		},
	}, nil
}
