package update_draft

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgEmptyPatch         = "no fields to update"
	msgMissingUserID      = "missing user ID"
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

// Handle PATCH /api/v1/wizard/sessions/{sessionId}/draft
// Тело - частичный черновик: отсутствующие поля не меняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /wizard/sessions/{id}/draft - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var patch domain.DraftPatch
	if err := handlers.DecodeJSON(r, &patch); err != nil {
		h.logger.Warn("PATCH /wizard/sessions/{id}/draft - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if patch.IsEmpty() {
		handlers.RespondBadRequest(w, msgEmptyPatch)
		return
	}

	session, err := h.sessions.Get(sessionID, userID)
	if err == nil {
		var view wizard.View
		view, err = session.UpdateDraft(patch)
		if err == nil {
			handlers.RespondJSON(w, http.StatusOK, view)
			return
		}
	}

	if handlers.RespondWizardError(w, err) {
		h.logger.Warn("PATCH /wizard/sessions/{id}/draft - %v: session_id=%s, user_id=%d", err, sessionID, userID)
		return
	}
	h.logger.Error("PATCH /wizard/sessions/{id}/draft - Failed to update draft: session_id=%s, error=%v", sessionID, err)
	handlers.RespondInternalError(w)
}
