package validator

import (
	"net/netip"
	"strconv"
)

// IPv4Address reports whether value is a dotted-quad IPv4 address.
// IPv4-mapped IPv6 forms such as ::ffff:10.0.0.1 are rejected.
func IPv4Address(value string, _ RuleOptions) bool {
	if value == "" {
		return true
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return false
	}
	return addr.Is4()
}

// Port reports whether value is a TCP/UDP port number in 1..65535.
func Port(value string, _ RuleOptions) bool {
	if value == "" {
		return true
	}
	n, err := strconv.ParseUint(value, 10, 16)
	return err == nil && n > 0
}

// ValidIPv4 builds a Rule for Apply; the empty string fails.
func ValidIPv4(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != "" && IPv4Address(value, RuleOptions{})
		},
		Error: ValidationError{
			Field:          field,
			Rule:           RuleIPv4,
			Message:        "must be a valid IPv4 address",
			TranslationKey: "validation.ipv4",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
