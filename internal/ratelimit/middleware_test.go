package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(l *Limiter) *gin.Engine {
	r := gin.New()
	api := r.Group("/api", Middleware(l))
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"key": ClientKey(c)})
	})
	return r
}

func TestMiddleware_SetsHeaderAndBlocks(t *testing.T) {
	l := New(NewMemoryBackend(),
		WithClock(newClock().Now),
		WithWindows(Window{Name: "minute", Limit: 2, Period: time.Minute}),
	)
	r := newRouter(l)

	for _, want := range []string{"1", "0"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Header().Get(HeaderRemaining))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get(HeaderRemaining))
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
}

func TestMiddleware_FailsOpen(t *testing.T) {
	r := newRouter(New(failingBackend{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(HeaderRemaining))
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr", "203.0.113.7:5555", "", "203.0.113.7"},
		{"forwarded header only", "", "198.51.100.2", "198.51.100.2"},
		{"nothing", "", "", "Unknown IP"},
	}
	r := newRouter(New(NewMemoryBackend()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"key":"`+tt.want+`"}`, w.Body.String())
		})
	}
}
