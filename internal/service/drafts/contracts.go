package drafts

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// DraftRepository интерфейс репозитория черновиков
type DraftRepository interface {
	Get(ctx context.Context, userID int64) (*domain.SavedDraft, error)
	Upsert(ctx context.Context, userID int64, draft domain.BookingDraft) (*domain.SavedDraft, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
