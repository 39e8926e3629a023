package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
	createBooking "github.com/m04kA/SMC-BookingWizard/internal/usecase/create_booking"
)

// DraftStore хранилище черновиков, одна запись на пользователя
type DraftStore interface {
	// Load возвращает nil без ошибки, если черновика нет
	Load(ctx context.Context, userID int64) (*domain.BookingDraft, error)
	Save(ctx context.Context, userID int64, draft domain.BookingDraft) error
}

// MarketplaceClient интерфейс клиента маркетплейса
type MarketplaceClient interface {
	GetCleaner(ctx context.Context, cleanerID string) (*marketplace.Cleaner, error)
	EstimatePrice(ctx context.Context, req *marketplace.EstimateRequest) (*marketplace.Estimate, error)
}

// HolidayLookup проверка праздника по дате; nil означает "праздника нет"
type HolidayLookup interface {
	LookupHoliday(ctx context.Context, date string) (*domain.Holiday, error)
}

// BookingCreator use case создания бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Notifier доставка уведомлений пользователю
// Notify вызывается под мьютексом сессии и не должен блокироваться
type Notifier interface {
	Notify(sessionID string, notice domain.Notice)
	CloseSession(sessionID string)
}

// Metrics метрики визарда
type Metrics interface {
	ObserveDraftSave(trigger, result string)
	ObserveLookup(kind, result string)
	ObserveSubmission(result string)
	SetActiveSessions(n int)
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

// NopNotifier используется, когда realtime-уведомления не нужны
type NopNotifier struct{}

func (NopNotifier) Notify(string, domain.Notice) {}
func (NopNotifier) CloseSession(string)          {}

type nopMetrics struct{}

func (nopMetrics) ObserveDraftSave(string, string) {}
func (nopMetrics) ObserveLookup(string, string)    {}
func (nopMetrics) ObserveSubmission(string)        {}
func (nopMetrics) SetActiveSessions(int)           {}
