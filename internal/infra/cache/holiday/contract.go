package holiday

import (
	"context"

	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
)

// Source источник праздников (клиент маркетплейса)
type Source interface {
	GetHoliday(ctx context.Context, date string) (*marketplace.Holiday, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
