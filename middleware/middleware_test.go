package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"almadina/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func do(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	return doFrom(r, "", header)
}

// doFrom sends GET /ping from remoteAddr, or httptest's 192.0.2.1 when empty.
func doFrom(r http.Handler, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	require.NoError(t, r.SetTrustedProxies(nil))

	assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.1:4000", nil).Code)
	assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.1:4001", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(r, "10.0.0.1:4002", nil).Code)

	assert.Equal(t, http.StatusOK, doFrom(r, "10.0.0.2:4000", nil).Code)
}

func TestRateLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	require.NoError(t, r.SetTrustedProxies(nil))

	for i, spoofed := range []string{"10.0.0.1", "10.0.0.2"} {
		w := do(r, http.Header{"X-Forwarded-For": {spoofed}, "X-Real-Ip": {spoofed}})
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
	w := do(r, http.Header{"X-Forwarded-For": {"10.0.0.3"}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitTrustedProxyForwardedFor(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))
	require.NoError(t, r.SetTrustedProxies([]string{"192.0.2.1"}))

	first := http.Header{"X-Forwarded-For": {"10.0.0.1"}}
	assert.Equal(t, http.StatusOK, do(r, first).Code)
	assert.Equal(t, http.StatusOK, do(r, first).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, first).Code)

	other := http.Header{"X-Forwarded-For": {"10.0.0.2"}}
	assert.Equal(t, http.StatusOK, do(r, other).Code)

	// Forwarding headers from a proxy that is not trusted are ignored.
	assert.Equal(t, http.StatusOK, doFrom(r, "198.51.100.7:5000", first).Code)
}

func TestRateLimiterStoreBounded(t *testing.T) {
	store := newRateLimiterStore(1, 2)

	a := store.getLimiter("10.0.0.1")
	require.True(t, a.Allow())
	store.getLimiter("10.0.0.2")
	store.getLimiter("10.0.0.3")

	assert.Equal(t, 2, store.limiters.Len())
	assert.False(t, store.limiters.Contains("10.0.0.1"))

	// An evicted client starts over with a fresh limiter.
	assert.NotSame(t, a, store.getLimiter("10.0.0.1"))
	assert.Equal(t, 2, store.limiters.Len())
}

func TestRateLimiterStoreDefaults(t *testing.T) {
	store := newRateLimiterStore(0, 0)
	assert.Equal(t, 100, store.perMin)
	for i := 0; i < 3; i++ {
		store.getLimiter(fmt.Sprintf("10.0.0.%d", i))
	}
	assert.Equal(t, 3, store.limiters.Len())
}

func TestAdminTokenMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newRouter(AdminTokenMiddleware(string(hash)))

	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"missing header", http.Header{}, http.StatusUnauthorized},
		{"not bearer", http.Header{"Authorization": {"Basic abc"}}, http.StatusUnauthorized},
		{"wrong token", http.Header{"Authorization": {"Bearer nope"}}, http.StatusUnauthorized},
		{"valid token", http.Header{"Authorization": {"Bearer s3cret"}}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(r, tt.header).Code)
		})
	}
}

func TestAdminTokenMiddlewareOpenWithoutHash(t *testing.T) {
	r := newRouter(AdminTokenMiddleware(""))
	assert.Equal(t, http.StatusOK, do(r, http.Header{}).Code)
}

func TestRequestLoggerMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestLoggerMiddleware(zap.NewNop()))
	var fromContext bool
	r.GET("/ping", func(c *gin.Context) {
		_, fromContext = c.Get(utils.LoggerContextKey)
		c.Status(http.StatusNoContent)
	})

	w := do(r, http.Header{})
	assert.True(t, fromContext)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = do(r, http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
