package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/pkg/clientip"
)

func request(remote string, headers map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remote
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func TestResolver(t *testing.T) {
	t.Parallel()

	res, err := clientip.NewResolver("10.0.0.0/8", "192.168.1.1")
	require.NoError(t, err)

	cases := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"direct peer", "192.168.1.20:5123", nil, "192.168.1.20"},
		{"headers from untrusted peer ignored", "192.168.1.20:5123", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "192.168.1.20"},
		{"forwarded through trusted proxy", "10.0.0.5:80", map[string]string{"X-Forwarded-For": "192.168.1.30"}, "192.168.1.30"},
		{"spoofed leading hop skipped", "10.0.0.5:80", map[string]string{"X-Forwarded-For": "6.6.6.6, 192.168.1.30, 10.0.0.9"}, "192.168.1.30"},
		{"single trusted address", "192.168.1.1:80", map[string]string{"X-Real-IP": "192.168.1.40"}, "192.168.1.40"},
		{"trusted proxy without headers", "10.0.0.5:80", nil, "10.0.0.5"},
		{"ipv4 mapped ipv6", "[::ffff:192.168.1.20]:5123", nil, "192.168.1.20"},
		{"ipv6 peer", "[fe80::1%eth0]:5123", nil, "fe80::1"},
		{"bare address", "192.168.1.20", nil, "192.168.1.20"},
		{"garbage", "not-an-ip", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, res.Resolve(request(tc.remote, tc.headers)))
		})
	}
}

func TestNewResolver_Invalid(t *testing.T) {
	t.Parallel()

	_, err := clientip.NewResolver("10.0.0.0/33")
	assert.ErrorIs(t, err, clientip.ErrInvalidProxy)
	_, err = clientip.NewResolver("proxy.local")
	assert.ErrorIs(t, err, clientip.ErrInvalidProxy)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), request("192.168.1.20:5123", map[string]string{"X-Forwarded-For": "1.2.3.4"}))
	assert.Equal(t, "192.168.1.20", got)

	attr, ok := clientip.LoggerExtractor()(clientip.WithContext(context.Background(), got))
	require.True(t, ok)
	assert.Equal(t, "client_ip", attr.Key)

	_, ok = clientip.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
