package start_session

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
)

type WizardManager interface {
	Start(ctx context.Context, userID int64, cleanerID string) (*wizard.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
