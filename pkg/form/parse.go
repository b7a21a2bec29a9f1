package form

import (
	"fmt"
	"strings"

	"github.com/unada-gw/trustform/pkg/validator"
)

// ParseRules parses pipe-delimited rule syntax such as
// "required|mac|max:64" or "integer:1,65535". Whitespace around names and
// arguments is trimmed; empty segments are skipped.
func ParseRules(spec string) ([]RuleRef, error) {
	var refs []RuleRef

	for segment := range strings.SplitSeq(spec, "|") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, rawArgs, hasArgs := strings.Cut(segment, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: missing rule name in %q", ErrInvalidRuleSpec, segment)
		}

		ref := RuleRef{Name: name}
		if hasArgs {
			for arg := range strings.SplitSeq(rawArgs, ",") {
				ref.Options.Args = append(ref.Options.Args, strings.TrimSpace(arg))
			}
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

// MustParseRules is ParseRules for literals in code.
func MustParseRules(spec string) []RuleRef {
	refs, err := ParseRules(spec)
	if err != nil {
		panic(err)
	}
	return refs
}

// WithMessage returns a copy of refs where the rule called name carries msg.
func WithMessage(refs []RuleRef, name, msg string) []RuleRef {
	out := make([]RuleRef, len(refs))
	for i, r := range refs {
		if r.Name == name {
			r.Options = validator.RuleOptions{Message: msg, Args: r.Options.Args}
		}
		out[i] = r
	}
	return out
}
