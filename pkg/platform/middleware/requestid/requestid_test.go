package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eligo/pkg/platform/middleware/requesttime"
	"eligo/pkg/requestcontext"
)

func serve(t *testing.T, h http.Handler, inbound string) (seen string, rr *httptest.ResponseRecorder) {
	t.Helper()
	wrapped := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
		h.ServeHTTP(w, r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	if inbound != "" {
		req.Header.Set(Header, inbound)
	}
	rr = httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)
	return seen, rr
}

func TestMiddleware_GeneratesID(t *testing.T) {
	seen, rr := serve(t, http.NotFoundHandler(), "")
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rr.Header().Get(Header))
}

func TestMiddleware_ReusesInboundID(t *testing.T) {
	seen, rr := serve(t, http.NotFoundHandler(), "trace-abc")
	assert.Equal(t, "trace-abc", seen)
	assert.Equal(t, "trace-abc", rr.Header().Get(Header))
}

func TestMiddleware_ReplacesOversizedID(t *testing.T) {
	long := strings.Repeat("x", maxInboundLength+1)
	seen, _ := serve(t, http.NotFoundHandler(), long)
	assert.NotEqual(t, long, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestRequestTimeIsPinned(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var first, second time.Time
	h := requesttime.MiddlewareWithClock(func() time.Time { return fixed })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			first = requestcontext.Now(r.Context())
			second = requestcontext.Now(r.Context())
		}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, fixed, first)
	assert.Equal(t, first, second)
}
