package validator

import (
	"regexp"
	"strings"
)

// Six hex octets with a single delimiter kind throughout. RE2 has no
// backreferences, so each delimiter gets its own pattern.
var (
	macColonRegex  = regexp.MustCompile(`^[0-9A-Fa-f]{2}(?::[0-9A-Fa-f]{2}){5}$`)
	macHyphenRegex = regexp.MustCompile(`^[0-9A-Fa-f]{2}(?:-[0-9A-Fa-f]{2}){5}$`)
)

// MACAddress reports whether value is a colon- or hyphen-delimited
// six-octet MAC address. The empty string passes: presence is the job of
// the required rule. Mixing ':' and '-' within one address fails.
//
// opts is accepted for the Predicate signature and is not consulted.
func MACAddress(value string, _ RuleOptions) bool {
	if value == "" {
		return true
	}
	return macColonRegex.MatchString(value) || macHyphenRegex.MatchString(value)
}

// NormalizeMAC returns the canonical lowercase, colon-delimited form of a
// value accepted by MACAddress.
func NormalizeMAC(value string) (string, error) {
	if value == "" || !MACAddress(value, RuleOptions{}) {
		return "", ErrInvalidMAC
	}
	return strings.ToLower(strings.ReplaceAll(value, "-", ":")), nil
}

// ValidMAC builds a Rule for Apply. Unlike the registry rule it rejects the
// empty string, matching the other Valid* builders.
func ValidMAC(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != "" && MACAddress(value, RuleOptions{})
		},
		Error: ValidationError{
			Field:          field,
			Rule:           RuleMAC,
			Message:        "must be a valid MAC address",
			TranslationKey: "validation.mac",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
