package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

const (
	sendBuffer   = 16
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 5 * time.Second
	readLimit    = 1 << 12
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Message то, что уходит клиенту по websocket
type Message struct {
	SessionID string        `json:"sessionId"`
	Notice    domain.Notice `json:"notice"`
}

// Hub раздает уведомления визарда подписчикам сессии
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*client]struct{}
	logger   Logger
}

// NewHub создает пустой hub
func NewHub(logger Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*client]struct{}),
		logger:   logger,
	}
}

// Notify отправляет уведомление всем подписчикам сессии
// Клиенты с переполненным буфером отключаются
func (h *Hub) Notify(sessionID string, notice domain.Notice) {
	data, err := json.Marshal(Message{SessionID: sessionID, Notice: notice})
	if err != nil {
		h.logger.Error("Realtime: failed to encode notice for session=%s: %v", sessionID, err)
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.sessions[sessionID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Realtime: send buffer full, dropping client session=%s", sessionID)
		h.detach(c)
	}
}

// Attach подписывает соединение на уведомления сессии и запускает pump-горутины
// Возвращает управление сразу; соединение закрывается hub'ом
func (h *Hub) Attach(conn *websocket.Conn, sessionID string) {
	c := &client{
		hub:       h,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, sendBuffer),
	}

	h.mu.Lock()
	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*client]struct{})
	}
	h.sessions[sessionID][c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("Realtime: client attached to session=%s", sessionID)

	go c.writePump()
	go c.readPump()
}

// CloseSession отключает всех подписчиков сессии
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	clients := h.sessions[sessionID]
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

// Subscribers количество подписчиков сессии
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) detach(c *client) {
	h.mu.Lock()
	if set, ok := h.sessions[c.sessionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.sessions, c.sessionID)
		}
	}
	h.mu.Unlock()
	c.close()
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
	closeOnce sync.Once
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.conn.Close()
	})
}

func (c *client) writePump() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.logger.Warn("Realtime: write error session=%s: %v", c.sessionID, err)
				c.hub.detach(c)
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.hub.detach(c)
				return
			}
		}
	}
}

// readPump нужен только для обработки pong и закрытия со стороны клиента
func (c *client) readPump() {
	defer c.hub.detach(c)

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.logger.Warn("Realtime: read error session=%s: %v", c.sessionID, err)
			}
			return
		}
	}
}
