package form

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/unada-gw/trustform/pkg/validator"
)

// Schema is the declarative description of one form.
type Schema struct {
	Fields         []Field
	DefaultMessage string
	Bail           bool
}

// Config turns the schema into an engine Config bound to reg.
func (s Schema) Config(reg *validator.Registry) Config {
	return Config{
		Registry:       reg,
		Fields:         s.Fields,
		DefaultMessage: s.DefaultMessage,
		Bail:           s.Bail,
	}
}

// LoadSchemas decodes a YAML document of named forms:
//
//	forms:
//	  trusted_user:
//	    bail: true
//	    fields:
//	      - field: facebook_id
//	        rules: "required|digits|max:64"
//	      - field: mac_address
//	        rules:
//	          - rule: required
//	          - rule: mac
//	            message: Use the AA:BB:CC:DD:EE:FF form
//
// Keys other than the ones shown are ignored. Rule names are not checked
// here; New does that against a concrete registry.
func LoadSchemas(r io.Reader) (map[string]Schema, error) {
	var doc schemaDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]Schema{}, nil
		}
		return nil, errors.Join(ErrInvalidSchema, err)
	}

	out := make(map[string]Schema, len(doc.Forms))
	for name, f := range doc.Forms {
		s := Schema{
			DefaultMessage: f.DefaultMessage,
			Bail:           f.Bail,
			Fields:         make([]Field, 0, len(f.Fields)),
		}
		for _, fd := range f.Fields {
			if fd.Field == "" {
				return nil, fmt.Errorf("%w: form %q has a field without a name", ErrInvalidSchema, name)
			}
			s.Fields = append(s.Fields, Field{Name: fd.Field, Rules: fd.Rules})
		}
		out[name] = s
	}
	return out, nil
}

type schemaDocument struct {
	Forms map[string]schemaForm `yaml:"forms"`
}

type schemaForm struct {
	DefaultMessage string        `yaml:"default_message"`
	Bail           bool          `yaml:"bail"`
	Fields         []schemaField `yaml:"fields"`
}

type schemaField struct {
	Field string   `yaml:"field"`
	Rules ruleList `yaml:"rules"`
}

type schemaRule struct {
	Rule    string   `yaml:"rule"`
	Message string   `yaml:"message"`
	Args    []string `yaml:"args"`
}

// ruleList accepts either pipe syntax or a sequence of rule mappings.
type ruleList []RuleRef

func (l *ruleList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		refs, err := ParseRules(node.Value)
		if err != nil {
			return err
		}
		*l = refs
		return nil

	case yaml.SequenceNode:
		var items []schemaRule
		if err := node.Decode(&items); err != nil {
			return err
		}
		refs := make([]RuleRef, 0, len(items))
		for _, it := range items {
			if it.Rule == "" {
				return fmt.Errorf("%w: rule entry without a name at line %d", ErrInvalidRuleSpec, node.Line)
			}
			refs = append(refs, RuleRef{
				Name:    it.Rule,
				Options: validator.RuleOptions{Message: it.Message, Args: it.Args},
			})
		}
		*l = refs
		return nil

	default:
		return fmt.Errorf("%w: rules must be a string or a list (line %d)", ErrInvalidRuleSpec, node.Line)
	}
}
