package session_notices

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/realtime"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

func TestCheckOrigin(t *testing.T) {
	assert.Nil(t, checkOrigin(nil), "empty list falls back to the same-origin check")

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{"listed", []string{"https://app.example.com/"}, "https://app.example.com", true},
		{"not listed", []string{"https://app.example.com"}, "https://evil.example.com", false},
		{"no origin header", []string{"https://app.example.com"}, "", true},
		{"wildcard", []string{"*"}, "https://anything.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, checkOrigin(tt.allowed)(req))
		})
	}
}

type stubSessions struct {
	mu    sync.Mutex
	errs  []error // ошибка для каждого очередного вызова Get
	calls int
}

func (s *stubSessions) Get(string, int64) (*wizard.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.calls < len(s.errs) {
		err = s.errs[s.calls]
	}
	s.calls++
	return nil, err
}

func (s *stubSessions) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func serve(t *testing.T, sessions *stubSessions, hub *realtime.Hub) *websocket.Conn {
	t.Helper()
	h := NewHandler(sessions, hub, nil, logger.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/wizard/sessions/{sessionId}/notices", func(w http.ResponseWriter, req *http.Request) {
		h.Handle(w, req.WithContext(middleware.WithUserID(req.Context(), 7)))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/wizard/sessions/s-1/notices"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHandler_SubscribesLiveSession(t *testing.T) {
	hub := realtime.NewHub(logger.Nop())
	sessions := &stubSessions{}
	serve(t, sessions, hub)

	require.Eventually(t, func() bool {
		return hub.Subscribers("s-1") == 1 && sessions.Calls() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestHandler_DropsSubscriptionWhenSessionClosedMeanwhile(t *testing.T) {
	hub := realtime.NewHub(logger.Nop())
	sessions := &stubSessions{errs: []error{nil, wizard.ErrSessionNotFound}}
	conn := serve(t, sessions, hub)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "connection must be closed by the server, not time out")
	}

	assert.Equal(t, 2, sessions.Calls())
	assert.Zero(t, hub.Subscribers("s-1"))
}

func TestHandler_UnknownSessionIsNotUpgraded(t *testing.T) {
	h := NewHandler(&stubSessions{errs: []error{wizard.ErrSessionNotFound}}, realtime.NewHub(logger.Nop()), nil, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/wizard/sessions/s-1/notices", nil)
	req = mux.SetURLVars(req, map[string]string{"sessionId": "s-1"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
