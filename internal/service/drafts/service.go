package drafts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	draftRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/draft"
)

// Service сервис черновиков бронирования
// Один черновик на пользователя, upsert без версионирования (last-write-wins)
type Service struct {
	repo   DraftRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(repo DraftRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Load получает последний сохранённый черновик пользователя
// Если черновика нет, возвращает (nil, nil): отсутствие черновика не ошибка для мастера
func (s *Service) Load(ctx context.Context, userID int64) (*domain.BookingDraft, error) {
	saved, err := s.Get(ctx, userID)
	if errors.Is(err, ErrDraftNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &saved.Draft, nil
}

// Get получает черновик пользователя вместе со временем последнего сохранения
func (s *Service) Get(ctx context.Context, userID int64) (*domain.SavedDraft, error) {
	saved, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		s.logger.Error("Get: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return saved, nil
}

// Save сохраняет черновик пользователя
func (s *Service) Save(ctx context.Context, userID int64, draft domain.BookingDraft) error {
	_, err := s.Put(ctx, userID, draft)
	return err
}

// Put валидирует и сохраняет черновик, возвращает сохранённое состояние
func (s *Service) Put(ctx context.Context, userID int64, draft domain.BookingDraft) (*domain.SavedDraft, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if err := validateDraft(draft); err != nil {
		s.logger.Warn("Put: invalid draft for user=%d: %v", userID, err)
		return nil, err
	}

	draft.AddOns = domain.NormalizeAddOns(draft.AddOns)

	saved, err := s.repo.Upsert(ctx, userID, draft)
	if err != nil {
		s.logger.Error("Put: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Put - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Put: draft saved for user=%d", userID)
	return saved, nil
}

// validateDraft проверяет только заполненные поля: черновик может быть неполным
func validateDraft(d domain.BookingDraft) error {
	if d.ServiceType != "" {
		if _, err := domain.ParseServiceType(string(d.ServiceType)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if d.DurationHours < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidDuration)
	}
	if d.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration_hours must be at most %d", ErrInvalidInput, domain.MaxDurationHours)
	}
	if d.ScheduledDate != "" {
		if _, err := time.Parse(domain.DateFormat, d.ScheduledDate); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidDate)
		}
	}
	if d.ScheduledTime != "" {
		if _, err := time.Parse(domain.TimeFormat, d.ScheduledTime); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrInvalidTime)
		}
	}
	if len(d.SpecialInstructions) > domain.MaxInstructionsLen {
		return fmt.Errorf("%w: special_instructions too long", ErrInvalidInput)
	}
	return nil
}
