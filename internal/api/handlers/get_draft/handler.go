package get_draft

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/service/drafts"
)

const (
	msgDraftNotFound = "no saved draft"
	msgMissingUserID = "missing user ID"
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

// Handle GET /api/v1/drafts/booking
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /drafts/booking - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	saved, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, drafts.ErrDraftNotFound) {
			handlers.RespondNotFound(w, msgDraftNotFound)
			return
		}
		h.logger.Error("GET /drafts/booking - Failed to get draft: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(saved))
}
