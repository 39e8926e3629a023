package navigate_step

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

const msgMissingUserID = "missing user ID"

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

// HandleNext POST /api/v1/wizard/sessions/{sessionId}/next
// На шаге подтверждения ничего не делает: дальше только submit
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "next", (*wizard.Session).Advance)
}

// HandleBack POST /api/v1/wizard/sessions/{sessionId}/back
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, "back", (*wizard.Session).Retreat)
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, action string, move func(*wizard.Session) (wizard.View, error)) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard/sessions/{id}/%s - Missing user ID", action)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.sessions.Get(sessionID, userID)
	if err == nil {
		var view wizard.View
		view, err = move(session)
		if err == nil {
			handlers.RespondJSON(w, http.StatusOK, view)
			return
		}
	}

	if handlers.RespondWizardError(w, err) {
		h.logger.Warn("POST /wizard/sessions/{id}/%s - %v: session_id=%s, user_id=%d", action, err, sessionID, userID)
		return
	}
	h.logger.Error("POST /wizard/sessions/{id}/%s - Failed: session_id=%s, error=%v", action, sessionID, err)
	handlers.RespondInternalError(w)
}
