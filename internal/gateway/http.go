package gateway

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/unada-gw/trustform/handler"
	"github.com/unada-gw/trustform/pkg/binder"
)

// HTTP serves the configuration form under a mount point such as
// /gateway/config.
type HTTP struct {
	svc          *Service
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewHTTP wires svc to errorHandler.
func NewHTTP(svc *Service, errorHandler handler.ErrorHandler[handler.Context]) *HTTP {
	return &HTTP{svc: svc, errorHandler: errorHandler}
}

type saveRequest struct {
	Values url.Values `form:"*"`
}

func (h *HTTP) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(h.get,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Post("/", handler.Wrap(h.save,
		handler.WithBinders[handler.Context, saveRequest](binder.Form(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, saveRequest](h.errorHandler),
	))

	return r
}

func (h *HTTP) get(ctx handler.Context, _ struct{}) handler.Response {
	cfg, err := h.svc.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = handler.ErrNotFound.WithMessage(ErrNotFound.Error()).Wrap(err)
		}
		return handler.Error(err)
	}
	return handler.JSON(cfg)
}

func (h *HTTP) save(ctx handler.Context, req saveRequest) handler.Response {
	if req.Values == nil {
		return handler.Error(handler.ErrUnsupportedMediaType.WithMessage("send the form as urlencoded, multipart or JSON"))
	}
	cfg, err := h.svc.Save(ctx, req.Values)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(cfg)
}
