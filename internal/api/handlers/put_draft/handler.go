package put_draft

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/service/drafts"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "missing user ID"
)

type Handler struct {
	service DraftService
	logger  Logger
}

func NewHandler(service DraftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/drafts/booking
// Последняя запись побеждает
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /drafts/booking - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PutDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /drafts/booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	saved, err := h.service.Put(r.Context(), userID, req.Draft)
	if err != nil {
		if errors.Is(err, drafts.ErrInvalidInput) {
			h.logger.Warn("PUT /drafts/booking - Invalid draft: user_id=%d: %v", userID, err)
			handlers.RespondBadRequest(w, handlers.DraftErrorMessage(err))
			return
		}
		h.logger.Error("PUT /drafts/booking - Failed to save draft: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, DraftResponse{Draft: saved.Draft, UpdatedAt: saved.UpdatedAt})
}
