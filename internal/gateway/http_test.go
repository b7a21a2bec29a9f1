package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/handler"
	"github.com/unada-gw/trustform/internal/gateway"
	"github.com/unada-gw/trustform/pkg/logger"
)

func TestHTTP(t *testing.T) {
	t.Parallel()

	svc := newService(t, gateway.NewMemoryStore())
	r := chi.NewRouter()
	r.Mount("/gateway/config", gateway.NewHTTP(svc, handler.NewErrorHandler(logger.Discard())).Handle())

	send := func(method, contentType, body string) (*httptest.ResponseRecorder, handler.JSONResponse) {
		req := httptest.NewRequest(method, "/gateway/config", strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		var env handler.JSONResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		return rr, env
	}

	rr, env := send(http.MethodGet, "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "gateway is not configured", env.Error.Message)

	bad := validForm()
	bad.Set("ip_address", "10.0.0.256")
	rr, env = send(http.MethodPost, "application/x-www-form-urlencoded", bad.Encode())
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, map[string][]string{"ip_address": {"must be a valid IPv4 address"}}, env.Error.Details)

	rr, env = send(http.MethodPost, "application/x-www-form-urlencoded", validForm().Encode())
	require.Equal(t, http.StatusOK, rr.Code)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", data["mac_address"])

	rr, env = send(http.MethodGet, "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	data, ok = env.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 8080, data["port"])
	assert.Equal(t, true, data["bootstrap"])
}
