package get_draft

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

type DraftService interface {
	Get(ctx context.Context, userID int64) (*domain.SavedDraft, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
