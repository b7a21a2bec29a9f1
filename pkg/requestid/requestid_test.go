package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unada-gw/trustform/pkg/requestid"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, header, incoming string) (seen string, echoed string) {
	t.Helper()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(header, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return seen, rec.Header().Get(header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid when missing", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, requestid.Middleware(), requestid.Header, "")
		assert.Equal(t, seen, echoed)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		t.Parallel()
		seen, echoed := serve(t, requestid.Middleware(), requestid.Header, "gw-01_abc")
		assert.Equal(t, "gw-01_abc", seen)
		assert.Equal(t, "gw-01_abc", echoed)
	})

	for _, bad := range []string{"a b", "a/b", "<script>", strings.Repeat("a", 129)} {
		t.Run("replaces "+bad[:min(len(bad), 8)], func(t *testing.T) {
			t.Parallel()
			seen, echoed := serve(t, requestid.Middleware(), requestid.Header, bad)
			assert.NotEqual(t, bad, seen)
			assert.Equal(t, seen, echoed)
		})
	}

	t.Run("custom header and generator", func(t *testing.T) {
		t.Parallel()
		mw := requestid.Middleware(
			requestid.WithHeader("X-Trace"),
			requestid.WithGenerator(func() string { return "fixed" }),
		)
		seen, echoed := serve(t, mw, "X-Trace", "")
		assert.Equal(t, "fixed", seen)
		assert.Equal(t, "fixed", echoed)
	})
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "abc"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.String())
}
