package close_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
)

const msgMissingUserID = "missing user ID"

type Handler struct {
	sessions SessionCloser
	logger   Logger
}

func NewHandler(sessions SessionCloser, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle DELETE /api/v1/wizard/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /wizard/sessions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.sessions.Close(sessionID, userID); err != nil {
		if handlers.RespondWizardError(w, err) {
			h.logger.Warn("DELETE /wizard/sessions/{id} - %v: session_id=%s, user_id=%d", err, sessionID, userID)
			return
		}
		h.logger.Error("DELETE /wizard/sessions/{id} - Failed to close session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondNoContent(w)
}
