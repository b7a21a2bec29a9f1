// Package form validates submitted form values against per-field rule
// lists resolved from an explicit validator.Registry.
//
// An Engine is built once from a Config and reused for every submission:
//
//	engine, err := form.New(form.Config{
//		Registry: validator.DefaultRegistry(),
//		Fields: []form.Field{
//			{Name: "mac_address", Rules: form.MustParseRules("required|mac")},
//		},
//	})
//	if err != nil {
//		// unknown rule name or missing registry
//	}
//
//	if err := engine.ValidateValues(r.PostForm); err != nil {
//		verrs := validator.ExtractValidationErrors(err)
//		// verrs.Details() -> {"mac_address": ["must be a valid MAC address"]}
//	}
//
// Each rule on a field is evaluated independently. When a rule fails the
// reported message is, in order of preference, the message configured on
// that use of the rule, the rule definition's message, Config.DefaultMessage.
//
// Forms can also be declared in YAML and loaded with LoadSchemas.
package form
