package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
)

// MarketplaceClient интерфейс клиента маркетплейса
type MarketplaceClient interface {
	CreateBooking(ctx context.Context, req *marketplace.CreateBookingRequest) (*marketplace.Booking, error)
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event *domain.BookingCreatedEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
