package validator

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxSSIDLength is the 802.11 limit on SSID length in octets.
const maxSSIDLength = 32

// Present is the required rule: value must contain non-whitespace content.
// It is the only built-in predicate that rejects the empty string.
func Present(value string, _ RuleOptions) bool {
	return strings.TrimSpace(value) != ""
}

// MinLength reports whether value has at least Args[0] runes.
func MinLength(value string, opts RuleOptions) bool {
	if value == "" {
		return true
	}
	n, ok := intArg(opts, 0)
	if !ok {
		return false
	}
	return utf8.RuneCountInString(value) >= n
}

// MaxLength reports whether value has at most Args[0] runes.
func MaxLength(value string, opts RuleOptions) bool {
	if value == "" {
		return true
	}
	n, ok := intArg(opts, 0)
	if !ok {
		return false
	}
	return utf8.RuneCountInString(value) <= n
}

// Digits reports whether value consists of ASCII digits only.
func Digits(value string, _ RuleOptions) bool {
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// Integer reports whether value is a base-10 integer. Optional Args[0] and
// Args[1] are inclusive lower and upper bounds; an empty arg means unbounded.
func Integer(value string, opts RuleOptions) bool {
	if value == "" {
		return true
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return false
	}
	if len(opts.Args) > 0 && opts.Args[0] != "" {
		lo, err := strconv.ParseInt(opts.Args[0], 10, 64)
		if err != nil || n < lo {
			return false
		}
	}
	if len(opts.Args) > 1 && opts.Args[1] != "" {
		hi, err := strconv.ParseInt(opts.Args[1], 10, 64)
		if err != nil || n > hi {
			return false
		}
	}
	return true
}

// Boolean accepts the spellings HTML checkboxes and hand-written forms use.
func Boolean(value string, _ RuleOptions) bool {
	if value == "" {
		return true
	}
	_, ok := ParseBool(value)
	return ok
}

// ParseBool parses the values accepted by Boolean.
func ParseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "on", "yes":
		return true, true
	case "false", "0", "off", "no":
		return false, true
	default:
		return false, false
	}
}

// SSID reports whether value is a usable network name: at most 32 bytes and
// free of control characters.
func SSID(value string, _ RuleOptions) bool {
	if value == "" {
		return true
	}
	if len(value) > maxSSIDLength || !utf8.ValidString(value) {
		return false
	}
	for _, r := range value {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// Required builds a Rule for Apply that fails on blank values.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return Present(value, RuleOptions{}) },
		Error: ValidationError{
			Field:          field,
			Rule:           RuleRequired,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MaxLen builds a Rule for Apply limiting value to max runes.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:          field,
			Rule:           RuleMax,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

func intArg(opts RuleOptions, i int) (int, bool) {
	if i >= len(opts.Args) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(opts.Args[i]))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
