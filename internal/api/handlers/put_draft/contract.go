package put_draft

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

type DraftService interface {
	Put(ctx context.Context, userID int64, draft domain.BookingDraft) (*domain.SavedDraft, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
