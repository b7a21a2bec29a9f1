package validator

import "errors"

var (
	// ErrValidationFailed matches any non-empty ValidationErrors via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownRule is returned when a rule name is not present in a Registry.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrInvalidDefinition is returned by NewRegistry for a definition with an
	// empty name or a nil predicate.
	ErrInvalidDefinition = errors.New("invalid rule definition")

	// ErrDuplicateRule is returned by NewRegistry when two definitions share a name.
	ErrDuplicateRule = errors.New("duplicate rule name")

	// ErrInvalidMAC is returned by NormalizeMAC for values the mac rule rejects.
	ErrInvalidMAC = errors.New("invalid MAC address")
)
