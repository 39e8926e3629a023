package save_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

const (
	msgMissingUserID = "missing user ID"
	msgSaveFailed    = "Could not save your draft. Please try again."
)

type Handler struct {
	sessions SessionProvider
	logger   Logger
}

func NewHandler(sessions SessionProvider, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/wizard/sessions/{sessionId}/draft/save
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard/sessions/{id}/draft/save - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.sessions.Get(sessionID, userID)
	if err == nil {
		var view wizard.View
		view, err = session.SaveDraft(r.Context())
		if err == nil {
			h.logger.Info("POST /wizard/sessions/{id}/draft/save - Draft saved: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondJSON(w, http.StatusOK, view)
			return
		}
	}

	switch {
	case handlers.RespondWizardError(w, err):
		h.logger.Warn("POST /wizard/sessions/{id}/draft/save - %v: session_id=%s, user_id=%d", err, sessionID, userID)
	case errors.Is(err, wizard.ErrDraftSave):
		h.logger.Error("POST /wizard/sessions/{id}/draft/save - Save failed: session_id=%s, error=%v", sessionID, err)
		handlers.RespondError(w, http.StatusBadGateway, msgSaveFailed)
	default:
		h.logger.Error("POST /wizard/sessions/{id}/draft/save - Failed: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
	}
}
