package form

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/unada-gw/trustform/pkg/validator"
)

// fallbackMessage is used when neither the rule use, the definition nor the
// engine config supply one.
const fallbackMessage = "is invalid"

// RuleRef is one use of a named rule on a field.
type RuleRef struct {
	Name    string
	Options validator.RuleOptions
}

// Field lists the rules applied to one form field, in evaluation order.
type Field struct {
	Name  string
	Rules []RuleRef
}

// Config is everything an Engine needs. It is read once by New.
type Config struct {
	// Registry resolves rule names. Required.
	Registry *validator.Registry
	// Fields are validated in order.
	Fields []Field
	// DefaultMessage is shown when a failing rule has no message of its own.
	DefaultMessage string
	// Bail stops evaluating a field's remaining rules after its first failure.
	Bail bool
}

type boundRule struct {
	def  validator.Definition
	opts validator.RuleOptions
}

type boundField struct {
	name  string
	rules []boundRule
}

// Engine validates submitted form values against a fixed set of field rules.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	fields         []boundField
	defaultMessage string
	bail           bool
}

// New resolves every rule in cfg against cfg.Registry. A rule name the
// registry does not know is a configuration error, reported here rather than
// on the first submission.
func New(cfg Config) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, ErrNilRegistry
	}

	e := &Engine{
		fields:         make([]boundField, 0, len(cfg.Fields)),
		defaultMessage: cfg.DefaultMessage,
		bail:           cfg.Bail,
	}
	if e.defaultMessage == "" {
		e.defaultMessage = fallbackMessage
	}

	for _, f := range cfg.Fields {
		if f.Name == "" {
			return nil, ErrEmptyFieldName
		}
		bf := boundField{name: f.Name, rules: make([]boundRule, 0, len(f.Rules))}
		for _, ref := range f.Rules {
			def, ok := cfg.Registry.Lookup(ref.Name)
			if !ok {
				return nil, errors.Join(ErrUnknownRule, fmt.Errorf("field %q uses rule %q", f.Name, ref.Name))
			}
			bf.rules = append(bf.rules, boundRule{def: def, opts: ref.Options})
		}
		e.fields = append(e.fields, bf)
	}

	return e, nil
}

// Fields returns the configured field names in evaluation order.
func (e *Engine) Fields() []string {
	names := make([]string, len(e.fields))
	for i, f := range e.fields {
		names[i] = f.name
	}
	return names
}

// Validate evaluates every configured rule once against values. Missing
// keys are treated as the empty string. It returns validator.ValidationErrors
// describing each failure, or nil.
func (e *Engine) Validate(values map[string]string) error {
	var errs validator.ValidationErrors

	for _, f := range e.fields {
		value := values[f.name]
		for _, r := range f.rules {
			if r.def.Check(value, r.opts) {
				continue
			}
			errs.Add(validator.ValidationError{
				Field:          f.name,
				Rule:           r.def.Name,
				Message:        e.message(r),
				TranslationKey: r.def.TranslationKey,
				TranslationValues: map[string]any{
					"field": f.name,
					"args":  r.opts.Args,
				},
			})
			if e.bail {
				break
			}
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// ValidateValues validates the first value of each key, the way a browser
// form submits single-valued inputs.
func (e *Engine) ValidateValues(values url.Values) error {
	flat := make(map[string]string, len(e.fields))
	for _, f := range e.fields {
		flat[f.name] = values.Get(f.name)
	}
	return e.Validate(flat)
}

func (e *Engine) message(r boundRule) string {
	switch {
	case r.opts.Message != "":
		return r.opts.Message
	case r.def.Message != "":
		return r.def.Message
	default:
		return e.defaultMessage
	}
}
