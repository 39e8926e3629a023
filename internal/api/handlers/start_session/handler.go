package start_session

import (
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
)

type Handler struct {
	manager WizardManager
	logger  Logger
}

func NewHandler(manager WizardManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// Handle POST /api/v1/wizard/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard/sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req StartSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.manager.Start(r.Context(), userID, req.CleanerID)
	if err != nil {
		if handlers.RespondWizardError(w, err) {
			h.logger.Warn("POST /wizard/sessions - Cannot start wizard: user_id=%d, cleaner_id=%s: %v", userID, req.CleanerID, err)
			return
		}
		h.logger.Error("POST /wizard/sessions - Failed to start wizard: user_id=%d, cleaner_id=%s, error=%v", userID, req.CleanerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /wizard/sessions - Session started: session_id=%s, user_id=%d", session.ID(), userID)
	handlers.RespondJSON(w, http.StatusCreated, session.View())
}
