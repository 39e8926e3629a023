package submit_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-BookingWizard/internal/usecase/create_booking"
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

// Handle POST /api/v1/wizard/sessions/{sessionId}/submit
// При ошибке сессия остаётся на шаге подтверждения; сообщение бэкенда отдаётся как есть
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard/sessions/{id}/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.sessions.Get(sessionID, userID)
	if err == nil {
		var view wizard.View
		view, err = session.Submit(r.Context())
		if err == nil {
			h.logger.Info("POST /wizard/sessions/{id}/submit - Booking created: session_id=%s, user_id=%d, booking_id=%s",
				sessionID, userID, view.Booking.ID)
			handlers.RespondJSON(w, http.StatusCreated, view)
			return
		}
	}

	switch {
	case handlers.RespondWizardError(w, err):
		h.logger.Warn("POST /wizard/sessions/{id}/submit - %v: session_id=%s, user_id=%d", err, sessionID, userID)

	case errors.Is(err, createBooking.ErrRejected):
		h.logger.Warn("POST /wizard/sessions/{id}/submit - Rejected: session_id=%s, user_id=%d: %v", sessionID, userID, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, createBooking.UserMessage(err))

	case errors.Is(err, createBooking.ErrScheduleRequired), errors.Is(err, createBooking.ErrInvalidInput):
		h.logger.Warn("POST /wizard/sessions/{id}/submit - Incomplete draft: session_id=%s, user_id=%d: %v", sessionID, userID, err)
		handlers.RespondBadRequest(w, createBooking.UserMessage(err))

	default:
		h.logger.Error("POST /wizard/sessions/{id}/submit - Failed to create booking: session_id=%s, error=%v", sessionID, err)
		handlers.RespondError(w, http.StatusBadGateway, createBooking.FallbackMessage)
	}
}
