// Package rulecheck evaluates a single registered rule against a single
// value over HTTP. Browser forms use it for inline feedback while the user
// is still typing.
package rulecheck

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/unada-gw/trustform/handler"
	"github.com/unada-gw/trustform/pkg/binder"
	"github.com/unada-gw/trustform/pkg/logger"
	"github.com/unada-gw/trustform/pkg/validator"
)

const fallbackMessage = "is invalid"

// Result is the outcome of one check. Message is what a form would show
// for this rule and is returned whether or not the value passed.
type Result struct {
	Rule    string `json:"rule"`
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// HTTP checks single values against named rules of the registry.
type HTTP struct {
	registry     *validator.Registry
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// NewHTTP serves rules from reg. A nil log discards output.
func NewHTTP(reg *validator.Registry, errorHandler handler.ErrorHandler[handler.Context], log *slog.Logger) *HTTP {
	if log == nil {
		log = logger.Discard()
	}
	return &HTTP{
		registry:     reg,
		errorHandler: errorHandler,
		log:          log.With(logger.Component("rulecheck")),
	}
}

type checkRequest struct {
	Name    string `path:"name"`
	Value   string `form:"value"`
	Message string `form:"message"`
	Args    string `form:"args"`
}

// Handle returns the router for the rules mount point.
func (h *HTTP) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(h.list,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Post("/{name}/check", handler.Wrap(h.check,
		handler.WithBinders[handler.Context, checkRequest](binder.Path(), binder.Form(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, checkRequest](h.errorHandler),
	))

	return r
}

func (h *HTTP) list(_ handler.Context, _ struct{}) handler.Response {
	names := h.registry.Names()
	return handler.JSON(names, handler.WithJSONMeta(map[string]any{"count": len(names)}))
}

func (h *HTTP) check(ctx handler.Context, req checkRequest) handler.Response {
	opts := validator.RuleOptions{Message: req.Message, Args: splitArgs(req.Args)}

	rule, err := h.registry.Rule("value", req.Name, req.Value, opts)
	if err != nil {
		if errors.Is(err, validator.ErrUnknownRule) {
			err = handler.ErrNotFound.WithMessage("unknown rule " + req.Name).Wrap(err)
		}
		return handler.Error(err)
	}

	res := Result{Rule: req.Name, Valid: rule.Check(), Message: rule.Error.Message}
	if res.Message == "" {
		res.Message = fallbackMessage
	}

	h.log.DebugContext(ctx, "rule checked", logger.Rule(req.Name), slog.Bool("valid", res.Valid))
	return handler.JSON(res)
}

func splitArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	args := strings.Split(raw, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args
}
