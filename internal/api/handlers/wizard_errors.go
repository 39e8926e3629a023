package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

const (
	msgCleanerRequired      = "Please select a cleaner before booking."
	msgCleanerNotFound      = "This cleaner is no longer available."
	msgSessionNotFound      = "Booking session not found or expired."
	msgAccessDenied         = "Access denied."
	msgSessionClosed        = "Booking session is closed."
	msgNotTerminalStep      = "Review your booking on the confirm step before submitting."
	msgSubmissionInProgress = "Your booking is being submitted."
	msgAlreadySubmitted     = "This booking has already been created."
)

// RespondWizardError переводит ошибки визарда в HTTP статус
// Возвращает false для неизвестных ошибок, чтобы обработчик сам залогировал их и вернул 500
func RespondWizardError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, wizard.ErrCleanerRequired):
		RespondErrorWithAction(w, http.StatusBadRequest, msgCleanerRequired, wizard.RecoveryReturnToSearch)
	case errors.Is(err, wizard.ErrCleanerNotFound):
		RespondErrorWithAction(w, http.StatusNotFound, msgCleanerNotFound, wizard.RecoveryReturnToSearch)
	case errors.Is(err, wizard.ErrSessionNotFound):
		RespondNotFound(w, msgSessionNotFound)
	case errors.Is(err, wizard.ErrAccessDenied):
		RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, wizard.ErrSessionClosed):
		RespondError(w, http.StatusGone, msgSessionClosed)
	case errors.Is(err, wizard.ErrInvalidDraft):
		RespondBadRequest(w, draftErrorMessage(err))
	case errors.Is(err, wizard.ErrNotTerminalStep):
		RespondConflict(w, msgNotTerminalStep)
	case errors.Is(err, wizard.ErrSubmissionInProgress):
		RespondConflict(w, msgSubmissionInProgress)
	case errors.Is(err, wizard.ErrAlreadySubmitted):
		RespondConflict(w, msgAlreadySubmitted)
	default:
		return false
	}
	return true
}

// draftErrorMessage сообщение для ошибок валидации черновика
func draftErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDuration):
		return "Duration must be at least one hour."
	case errors.Is(err, domain.ErrInvalidDate):
		return "Date must be in YYYY-MM-DD format."
	case errors.Is(err, domain.ErrInvalidTime):
		return "Time must be in HH:MM format."
	case errors.Is(err, domain.ErrInvalidServiceType):
		return "Unknown service type."
	default:
		return "Invalid booking details."
	}
}

// DraftErrorMessage то же для обработчиков хранилища черновиков
func DraftErrorMessage(err error) string {
	return draftErrorMessage(err)
}
