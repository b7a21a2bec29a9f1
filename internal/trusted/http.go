package trusted

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/unada-gw/trustform/handler"
	"github.com/unada-gw/trustform/pkg/binder"
)

// HTTP exposes the Service under a mount point such as /trusted-users.
type HTTP struct {
	svc          *Service
	errorHandler handler.ErrorHandler[handler.Context]
}

// NewHTTP wires svc to errorHandler, which renders every failed request.
func NewHTTP(svc *Service, errorHandler handler.ErrorHandler[handler.Context]) *HTTP {
	return &HTTP{svc: svc, errorHandler: errorHandler}
}

type registerRequest struct {
	Values url.Values `form:"*"`
}

type registerAllRequest struct {
	Items []url.Values `form:"*"`
}

type macRequest struct {
	MAC string `path:"mac"`
}

type idRequest struct {
	FacebookID string `path:"id"`
}

// Handle returns the router. POST / answers 201 for a new user and 200 for
// one already registered.
func (h *HTTP) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/", handler.Wrap(h.register,
		handler.WithBinders[handler.Context, registerRequest](binder.Form(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, registerRequest](h.errorHandler),
	))
	r.Post("/batch", handler.Wrap(h.registerAll,
		handler.WithBinders[handler.Context, registerAllRequest](binder.JSONBatch()),
		handler.WithErrorHandler[handler.Context, registerAllRequest](h.errorHandler),
	))
	r.Get("/", handler.Wrap(h.list,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Get("/{mac}", handler.Wrap(h.lookup,
		handler.WithBinders[handler.Context, macRequest](binder.Path()),
		handler.WithErrorHandler[handler.Context, macRequest](h.errorHandler),
	))
	r.Post("/{mac}/touch", handler.Wrap(h.touch,
		handler.WithBinders[handler.Context, macRequest](binder.Path()),
		handler.WithErrorHandler[handler.Context, macRequest](h.errorHandler),
	))
	r.Delete("/{id}", handler.Wrap(h.remove,
		handler.WithBinders[handler.Context, idRequest](binder.Path()),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))

	return r
}

func (h *HTTP) register(ctx handler.Context, req registerRequest) handler.Response {
	if req.Values == nil {
		return failure(handler.ErrUnsupportedMediaType.WithMessage("send the form as urlencoded, multipart or JSON"))
	}
	u, created, err := h.svc.Register(ctx, req.Values)
	if err != nil {
		return failure(err)
	}
	if !created {
		return handler.JSON(u)
	}
	return handler.JSON(u, handler.WithJSONStatus(http.StatusCreated))
}

func (h *HTTP) registerAll(ctx handler.Context, req registerAllRequest) handler.Response {
	if req.Items == nil {
		return failure(handler.ErrUnsupportedMediaType.WithMessage("send the registrations as a JSON array"))
	}
	n, err := h.svc.RegisterAll(ctx, req.Items)
	if err != nil {
		return failure(err)
	}
	return handler.JSON(map[string]int{"received": n})
}

func (h *HTTP) list(ctx handler.Context, _ struct{}) handler.Response {
	users, err := h.svc.List(ctx)
	if err != nil {
		return failure(err)
	}
	if users == nil {
		users = []TrustedUser{}
	}
	return handler.JSON(users, handler.WithJSONMeta(map[string]any{"count": len(users)}))
}

func (h *HTTP) lookup(ctx handler.Context, req macRequest) handler.Response {
	u, err := h.svc.Lookup(ctx, req.MAC)
	if err != nil {
		return failure(err)
	}
	return handler.JSON(u)
}

func (h *HTTP) touch(ctx handler.Context, req macRequest) handler.Response {
	u, err := h.svc.Touch(ctx, req.MAC)
	if err != nil {
		return failure(err)
	}
	return handler.JSON(u)
}

func (h *HTTP) remove(ctx handler.Context, req idRequest) handler.Response {
	if err := h.svc.Remove(ctx, req.FacebookID); err != nil {
		return failure(err)
	}
	return handler.Empty()
}

// failure defers err to the error handler, translating store misses.
func failure(err error) handler.Response {
	if errors.Is(err, ErrNotFound) {
		err = handler.ErrNotFound.WithMessage(ErrNotFound.Error()).Wrap(err)
	}
	return handler.Error(err)
}
