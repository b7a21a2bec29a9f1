package validator

// Built-in rule names.
const (
	RuleRequired  = "required"
	RuleMAC       = "mac"
	RuleIPv4      = "ipv4"
	RulePort      = "port"
	RuleInteger   = "integer"
	RuleBoolean   = "boolean"
	RuleLatitude  = "latitude"
	RuleLongitude = "longitude"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleDigits    = "digits"
	RuleSSID      = "ssid"
)

// Builtin returns the definitions of the built-in rules. The slice is freshly
// allocated on every call.
func Builtin() []Definition {
	return []Definition{
		{Name: RuleRequired, Check: Present, Message: "field is required"},
		{Name: RuleMAC, Check: MACAddress, Message: "must be a valid MAC address"},
		{Name: RuleIPv4, Check: IPv4Address, Message: "must be a valid IPv4 address"},
		{Name: RulePort, Check: Port, Message: "must be a port number between 1 and 65535"},
		{Name: RuleInteger, Check: Integer, Message: "must be a whole number in the allowed range"},
		{Name: RuleBoolean, Check: Boolean, Message: "must be true or false"},
		{Name: RuleLatitude, Check: Latitude, Message: "must be a latitude between -90 and 90"},
		{Name: RuleLongitude, Check: Longitude, Message: "must be a longitude between -180 and 180"},
		{Name: RuleMin, Check: MinLength, Message: "is too short"},
		{Name: RuleMax, Check: MaxLength, Message: "is too long"},
		{Name: RuleDigits, Check: Digits, Message: "must contain only digits"},
		{Name: RuleSSID, Check: SSID, Message: "must be a network name of at most 32 printable bytes"},
	}
}

// DefaultRegistry returns a new registry holding the built-in rules.
func DefaultRegistry() *Registry {
	return MustNewRegistry(Builtin()...)
}
