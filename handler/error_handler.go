package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/unada-gw/trustform/pkg/binder"
	"github.com/unada-gw/trustform/pkg/environment"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/requestid"
	"github.com/unada-gw/trustform/pkg/validator"
)

// Classify maps err onto a status code and the detail shown to clients.
//
// Validation failures become 422 with per-field messages, HTTPError keeps
// its own code, binder failures become 400 or 415, anything else is a 500.
// Unexpected error text is hidden when ctx carries the production
// environment.
func Classify(ctx Context, err error) (int, ErrorDetail) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "validation_error",
			Message: "the submitted form is invalid",
			Details: verrs.Details(),
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorDetail{Code: httpErr.Key, Message: msg}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, ErrorDetail{Code: ErrUnsupportedMediaType.Key, Message: err.Error()}
	case errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrInvalidPath):
		return http.StatusBadRequest, ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	msg := err.Error()
	if environment.IsProduction(ctx) {
		msg = http.StatusText(http.StatusInternalServerError)
	}
	return http.StatusInternalServerError, ErrorDetail{Code: ErrInternalServerError.Key, Message: msg}
}

// NewErrorHandler renders errors as JSON and logs them: client errors at
// warn, server errors at error.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx Context, err error) {
		status, detail := Classify(ctx, err)
		detail.RequestID = requestid.FromContext(ctx)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx, level, "request failed",
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
		)

		if rerr := JSONError(status, detail).Render(ctx.ResponseWriter(), ctx.Request()); rerr != nil {
			log.ErrorContext(ctx, "render error response", logger.Error(rerr))
		}
	}
}
