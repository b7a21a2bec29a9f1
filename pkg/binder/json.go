package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultMaxJSONSize bounds JSON request bodies.
	DefaultMaxJSONSize = 64 << 10
	// DefaultMaxJSONBatchSize bounds bodies read by JSONBatch.
	DefaultMaxJSONBatchSize = 1 << 20
)

// JSON binds a flat JSON object into `form:"name"` tagged fields, so JSON
// clients are validated exactly like browser forms. Scalars are converted
// to their textual form; nested objects and arrays are rejected. Requests
// that are not application/json yield ErrBinderNotApplicable.
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return ErrBinderNotApplicable
		}

		var raw map[string]any
		if err := decodeJSON(r, DefaultMaxJSONSize, &raw); err != nil {
			return err
		}
		values, err := flatValues(raw)
		if err != nil {
			return err
		}
		return bindValues(v, "form", values, ErrInvalidJSON)
	}
}

// JSONBatch binds a JSON array of flat objects into the `form:"*"` field of
// type []url.Values, one entry per object, converted the way JSON converts
// a single object. Requests that are not application/json yield
// ErrBinderNotApplicable.
func JSONBatch() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			return ErrBinderNotApplicable
		}

		var raw []map[string]any
		if err := decodeJSON(r, DefaultMaxJSONBatchSize, &raw); err != nil {
			return err
		}
		batch := make([]url.Values, 0, len(raw))
		for i, obj := range raw {
			values, err := flatValues(obj)
			if err != nil {
				return fmt.Errorf("%w (item %d)", err, i)
			}
			batch = append(batch, values)
		}
		return bindBatch(v, "form", batch, ErrInvalidJSON)
	}
}

func decodeJSON(r *http.Request, limit int64, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, limit))
	dec.UseNumber()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}
	return nil
}

func flatValues(raw map[string]any) (url.Values, error) {
	values := make(url.Values, len(raw))
	for k, val := range raw {
		s, err := scalarString(val)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrInvalidJSON, k, err)
		}
		values.Set(k, s)
	}
	return values, nil
}

func scalarString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	default:
		return "", errors.New("value must be a string, number, boolean or null")
	}
}
