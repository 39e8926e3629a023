package session_notices

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
)

const msgMissingUserID = "missing user ID"

type Handler struct {
	sessions SessionProvider
	hub      NoticeHub
	upgrader websocket.Upgrader
	logger   Logger
}

// NewHandler allowedOrigins пустой - принимаются только запросы с того же хоста
func NewHandler(sessions SessionProvider, hub NoticeHub, allowedOrigins []string, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		logger: logger,
	}
}

// Handle GET /api/v1/wizard/sessions/{sessionId}/notices
// Поднимает websocket, в который публикуются уведомления сессии
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /wizard/sessions/{id}/notices - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Сессию проверяем до апгрейда, чтобы вернуть обычный HTTP статус
	if _, err := h.sessions.Get(sessionID, userID); err != nil {
		if handlers.RespondWizardError(w, err) {
			h.logger.Warn("GET /wizard/sessions/{id}/notices - %v: session_id=%s, user_id=%d", err, sessionID, userID)
			return
		}
		h.logger.Error("GET /wizard/sessions/{id}/notices - Failed: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам пишет ответ клиенту
		h.logger.Warn("GET /wizard/sessions/{id}/notices - Upgrade failed: session_id=%s: %v", sessionID, err)
		return
	}

	h.hub.Attach(conn, sessionID)

	// Сессия могла закрыться между проверкой и подпиской: менеджер удаляет её из реестра
	// до hub.CloseSession, поэтому повторная проверка не пропускает закрытие
	if _, err := h.sessions.Get(sessionID, userID); err != nil {
		h.logger.Warn("GET /wizard/sessions/{id}/notices - Session gone after subscribe: session_id=%s: %v", sessionID, err)
		h.hub.CloseSession(sessionID)
		return
	}

	h.logger.Info("GET /wizard/sessions/{id}/notices - Subscribed: session_id=%s, user_id=%d", sessionID, userID)
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil // websocket.Upgrader проверяет совпадение с Host
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
