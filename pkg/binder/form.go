package binder

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
)

// DefaultMaxMemory bounds multipart parsing held in memory.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies into `form:"name"` tagged fields. A url.Values field tagged
// `form:"*"` receives every submitted value. Requests with any other
// content type yield ErrBinderNotApplicable.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return ErrBinderNotApplicable
		}

		var values url.Values
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = url.Values(r.MultipartForm.Value)
		default:
			return ErrBinderNotApplicable
		}

		return bindValues(v, "form", values, ErrInvalidForm)
	}
}
