package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors". All-nil input yields an
// empty Attr, which slog drops.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error", or nothing when err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Form records the form name under "form".
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// Field records a form field name under "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records a validation rule name under "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// MAC records a hardware address under "mac".
func MAC(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("mac", addr)
}

// FacebookID records a trusted user's social identifier under "facebook_id".
func FacebookID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("facebook_id", id)
}

// Count records a result size under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
