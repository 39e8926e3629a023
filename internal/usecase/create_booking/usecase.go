package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
)

// UseCase use case для создания бронирования из черновика визарда
type UseCase struct {
	client       MarketplaceClient
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client MarketplaceClient, publisher EventPublisher, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, cleaner=%s, date=%s, time=%s, duration=%d",
		req.UserID, req.CleanerID, req.Draft.ScheduledDate, req.Draft.ScheduledTime, req.Draft.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем тело запроса
	payload, err := buildPayload(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to build payload for user=%d: %v", req.UserID, err)
		return nil, err
	}

	// 3. Создаем бронирование в маркетплейсе
	booking, err := uc.client.CreateBooking(ctx, payload)
	if err != nil {
		var apiErr *marketplace.APIError
		if errors.As(err, &apiErr) {
			uc.logger.Warn("CreateBooking: rejected by marketplace: user=%d, status=%d, message=%s",
				req.UserID, apiErr.StatusCode, apiErr.Message)
			return nil, &RejectedError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
		uc.logger.Error("CreateBooking: failed to create booking for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	created := booking.ToDomain()
	if created.ScheduledAt.IsZero() {
		created.ScheduledAt = payload.ScheduledAt
	}
	if created.ScheduledEndAt.IsZero() {
		created.ScheduledEndAt = payload.ScheduledEndAt
	}
	if created.CleanerID == "" {
		created.CleanerID = req.CleanerID
	}

	// 4. Публикуем событие (best-effort: ошибка не откатывает бронирование)
	event := &domain.BookingCreatedEvent{
		BookingID:      created.ID,
		UserID:         req.UserID,
		CleanerID:      created.CleanerID,
		ServiceType:    payload.ServiceType,
		ScheduledAt:    created.ScheduledAt,
		ScheduledEndAt: created.ScheduledEndAt,
		IdempotencyKey: req.IdempotencyKey,
		OccurredAt:     uc.timeProvider.Now().UTC(),
	}
	if err := uc.publisher.PublishBookingCreated(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking=%s: %v", created.ID, err)
	}

	uc.logger.Info("CreateBooking: booking id=%s created for user=%d", created.ID, req.UserID)
	return created, nil
}
