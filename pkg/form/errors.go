package form

import "errors"

var (
	// ErrNilRegistry is returned by New when Config.Registry is nil.
	ErrNilRegistry = errors.New("form: nil rule registry")

	// ErrUnknownRule is returned by New when a field references a rule the
	// registry does not define.
	ErrUnknownRule = errors.New("form: unknown rule")

	// ErrEmptyFieldName is returned by New for a field without a name.
	ErrEmptyFieldName = errors.New("form: empty field name")

	// ErrInvalidRuleSpec is returned by ParseRules for malformed pipe syntax.
	ErrInvalidRuleSpec = errors.New("form: invalid rule specification")

	// ErrInvalidSchema is returned by LoadSchemas for documents that cannot be decoded.
	ErrInvalidSchema = errors.New("form: invalid schema document")
)
