package binder

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// Path binds chi route parameters into `path:"name"` tagged fields.
// chi matches on the raw path when one is set, so parameters are unescaped
// here: a MAC sent as aa%3Abb%3A... binds as aa:bb:...
func Path() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rctx := chi.RouteContext(r.Context())
		if rctx == nil {
			return ErrBinderNotApplicable
		}

		values := make(url.Values, len(rctx.URLParams.Keys))
		for i, key := range rctx.URLParams.Keys {
			if i >= len(rctx.URLParams.Values) {
				break
			}
			raw := rctx.URLParams.Values[i]
			value, err := url.PathUnescape(raw)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidPath, key, err)
			}
			values.Set(key, value)
		}
		return bindValues(v, "path", values, ErrInvalidPath)
	}
}
