// Package validator holds single-field validation rules and the registry
// that names them.
//
// A rule is a Predicate: a pure function from a raw field value and its
// RuleOptions to pass/fail. Every built-in rule except "required" passes the
// empty string, so presence and format stay separate concerns. A failing
// rule never returns an error of its own; callers turn a false result into a
// ValidationError carrying the configured message.
//
// # Registry
//
// Rules are looked up by name through an explicit Registry built at startup:
//
//	reg := validator.DefaultRegistry()
//	ok, err := reg.Evaluate("mac", "00:11:22:33:44:55", validator.RuleOptions{})
//
// A Registry is immutable after construction. Extend returns a copy with
// additional rules, so there is no package-level table to patch:
//
//	reg, err := validator.DefaultRegistry().Extend(validator.Definition{
//		Name:    "vlan",
//		Check:   vlanID,
//		Message: "must be a VLAN id",
//	})
//
// # MAC addresses
//
// The mac rule accepts six two-digit hex groups separated by ':' or '-'.
// One address must use a single delimiter kind: "00:11-22:33-44:55" fails.
// NormalizeMAC converts an accepted value to lowercase colon form for
// storage and comparison.
//
// # Rule builders
//
// For code that validates Go values directly, the Required, MaxLen, ValidMAC
// and ValidIPv4 builders return Rule values that Apply aggregates into
// ValidationErrors:
//
//	err := validator.Apply(
//		validator.Required("mac_address", mac),
//		validator.ValidMAC("mac_address", mac),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// verrs.Get("mac_address")
//	}
//
// All predicates are stateless and safe for concurrent use.
package validator
