package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var got int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "42", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"not a number", "abc", http.StatusUnauthorized},
		{"non positive", "0", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, int64(42), got)
			}
		})
	}
}

func TestRateLimiterPerUser(t *testing.T) {
	l := NewRateLimiter(1, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(userID int64) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call(1))
	assert.Equal(t, http.StatusOK, call(1))
	assert.Equal(t, http.StatusTooManyRequests, call(1))
	assert.Equal(t, http.StatusOK, call(2), "other users have their own bucket")

	assert.Equal(t, 0, l.Cleanup(time.Now()))
	assert.Equal(t, 2, l.Cleanup(time.Now().Add(time.Hour)))
}

type recordingCollector struct {
	mu     sync.Mutex
	routes []string
	codes  []string
}

func (c *recordingCollector) ObserveHTTPRequest(method, route, status string, _ float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes = append(c.routes, method+" "+route)
	c.codes = append(c.codes, status)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	c := &recordingCollector{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(c))
	r.HandleFunc("/wizard/sessions/{sessionId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wizard/sessions/abc-123", nil))

	require.Len(t, c.routes, 1)
	assert.Equal(t, "GET /wizard/sessions/{sessionId}", c.routes[0])
	assert.Equal(t, "404", c.codes[0])
}
