package session_notices

import (
	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

type SessionProvider interface {
	Get(sessionID string, userID int64) (*wizard.Session, error)
}

type NoticeHub interface {
	Attach(conn *websocket.Conn, sessionID string)
	CloseSession(sessionID string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
