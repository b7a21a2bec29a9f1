package binder_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/pkg/binder"
)

type gatewayRequest struct {
	MAC     string     `path:"mac"`
	Port    int        `form:"port"`
	Social  bool       `form:"social"`
	SSID    *string    `form:"open_ssid"`
	Ignored string     `form:"-"`
	Values  url.Values `form:"*"`
}

func formRequest(body url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		var req gatewayRequest
		err := binder.Form()(formRequest(url.Values{
			"port":      {"8080"},
			"social":    {"on"},
			"open_ssid": {"unada-open"},
			"extra":     {"x"},
		}), &req)
		require.NoError(t, err)
		assert.Equal(t, 8080, req.Port)
		assert.True(t, req.Social)
		require.NotNil(t, req.SSID)
		assert.Equal(t, "unada-open", *req.SSID)
		assert.Equal(t, "x", req.Values.Get("extra"))
		assert.Empty(t, req.Ignored)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("port", "53"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var req gatewayRequest
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, 53, req.Port)
		assert.Equal(t, "53", req.Values.Get("port"))
	})

	t.Run("not applicable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		r.Header.Set("Content-Type", "application/json")
		assert.ErrorIs(t, binder.Form()(r, &gatewayRequest{}), binder.ErrBinderNotApplicable)

		r = httptest.NewRequest(http.MethodGet, "/", nil)
		assert.ErrorIs(t, binder.Form()(r, &gatewayRequest{}), binder.ErrBinderNotApplicable)
	})

	t.Run("type mismatch", func(t *testing.T) {
		t.Parallel()
		err := binder.Form()(formRequest(url.Values{"port": {"http"}}), &gatewayRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidForm)
	})

	t.Run("bad target", func(t *testing.T) {
		t.Parallel()
		var s string
		err := binder.Form()(formRequest(url.Values{}), &s)
		assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	jsonRequest := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		return r
	}

	t.Run("flat object", func(t *testing.T) {
		t.Parallel()
		var req gatewayRequest
		err := binder.JSON()(jsonRequest(`{"port": 8080, "social": true, "open_ssid": null, "latitude": 46.05}`), &req)
		require.NoError(t, err)
		assert.Equal(t, 8080, req.Port)
		assert.True(t, req.Social)
		assert.Equal(t, "46.05", req.Values.Get("latitude"))
		assert.Equal(t, "true", req.Values.Get("social"))
	})

	t.Run("nested values rejected", func(t *testing.T) {
		t.Parallel()
		err := binder.JSON()(jsonRequest(`{"port": [1, 2]}`), &gatewayRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		err := binder.JSON()(jsonRequest(`{"port": 1} {"port": 2}`), &gatewayRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		err := binder.JSON()(jsonRequest(""), &gatewayRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("not applicable", func(t *testing.T) {
		t.Parallel()
		err := binder.JSON()(formRequest(url.Values{}), &gatewayRequest{})
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
	})
}

func TestJSONBatch(t *testing.T) {
	t.Parallel()

	type batchRequest struct {
		Items []url.Values `form:"*"`
	}

	jsonRequest := func(body string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		return r
	}

	t.Run("array of flat objects", func(t *testing.T) {
		t.Parallel()
		var req batchRequest
		err := binder.JSONBatch()(jsonRequest(`[{"facebook_id": 1001, "mac_address": "aa:bb:cc:dd:ee:ff"}, {"facebook_id": "1002"}]`), &req)
		require.NoError(t, err)
		require.Len(t, req.Items, 2)
		assert.Equal(t, "1001", req.Items[0].Get("facebook_id"))
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", req.Items[0].Get("mac_address"))
		assert.Equal(t, "1002", req.Items[1].Get("facebook_id"))
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()
		var req batchRequest
		require.NoError(t, binder.JSONBatch()(jsonRequest(`[]`), &req))
		assert.Empty(t, req.Items)
	})

	t.Run("nested item rejected", func(t *testing.T) {
		t.Parallel()
		err := binder.JSONBatch()(jsonRequest(`[{"facebook_id": {"id": 1}}]`), &batchRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("object instead of array", func(t *testing.T) {
		t.Parallel()
		err := binder.JSONBatch()(jsonRequest(`{"facebook_id": "1001"}`), &batchRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("target without a batch field", func(t *testing.T) {
		t.Parallel()
		err := binder.JSONBatch()(jsonRequest(`[]`), &gatewayRequest{})
		assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	})

	t.Run("not applicable", func(t *testing.T) {
		t.Parallel()
		err := binder.JSONBatch()(formRequest(url.Values{}), &batchRequest{})
		assert.ErrorIs(t, err, binder.ErrBinderNotApplicable)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	t.Run("chi params", func(t *testing.T) {
		t.Parallel()
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("mac", "00:11:22:33:44:55")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		var req gatewayRequest
		require.NoError(t, binder.Path()(r, &req))
		assert.Equal(t, "00:11:22:33:44:55", req.MAC)
	})

	t.Run("escaped params are decoded", func(t *testing.T) {
		t.Parallel()
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("mac", "aa%3Abb%3Acc%3Add%3Aee%3Aff")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		var req gatewayRequest
		require.NoError(t, binder.Path()(r, &req))
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", req.MAC)
	})

	t.Run("broken escape", func(t *testing.T) {
		t.Parallel()
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("mac", "aa%3")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		assert.ErrorIs(t, binder.Path()(r, &gatewayRequest{}), binder.ErrInvalidPath)
	})

	t.Run("through a router", func(t *testing.T) {
		t.Parallel()
		var got gatewayRequest
		router := chi.NewRouter()
		router.Get("/devices/{mac}", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, binder.Path()(r, &got))
			w.WriteHeader(http.StatusNoContent)
		})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/devices/aa%3Abb%3Acc%3Add%3Aee%3Aff", nil))
		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", got.MAC)
	})

	t.Run("outside chi", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.ErrorIs(t, binder.Path()(r, &gatewayRequest{}), binder.ErrBinderNotApplicable)
	})
}
