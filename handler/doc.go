// Package handler adapts typed request handlers to net/http.
//
// Wrap binds the request into a struct with the configured binders, calls
// the handler and renders its Response. Every failure, whether from binding,
// the handler or rendering, goes through one ErrorHandler, by default a JSON
// one built by NewErrorHandler:
//
//	{"error": {"code": "validation_error", "message": "...",
//	           "details": {"mac_address": ["must be a valid MAC address"]}}}
package handler
