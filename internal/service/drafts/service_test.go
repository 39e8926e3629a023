package drafts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	draftRepo "github.com/m04kA/SMC-BookingWizard/internal/infra/storage/draft"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

type stubRepo struct {
	saved     map[int64]domain.SavedDraft
	getErr    error
	upsertErr error
	upserts   int
}

func newStubRepo() *stubRepo {
	return &stubRepo{saved: map[int64]domain.SavedDraft{}}
}

func (r *stubRepo) Get(_ context.Context, userID int64) (*domain.SavedDraft, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	s, ok := r.saved[userID]
	if !ok {
		return nil, draftRepo.ErrDraftNotFound
	}
	return &s, nil
}

func (r *stubRepo) Upsert(_ context.Context, userID int64, d domain.BookingDraft) (*domain.SavedDraft, error) {
	r.upserts++
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	s := domain.SavedDraft{UserID: userID, Draft: d, UpdatedAt: time.Now()}
	r.saved[userID] = s
	return &s, nil
}

func TestService_LoadMissingDraftIsNotAnError(t *testing.T) {
	svc := NewService(newStubRepo(), logger.Nop())

	d, err := svc.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestService_SaveThenLoad(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, logger.Nop())

	draft := domain.BookingDraft{ScheduledDate: "2026-11-26", AddOns: []string{"oven", "fridge", "oven"}}
	require.NoError(t, svc.Save(context.Background(), 5, draft))

	got, err := svc.Load(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "2026-11-26", got.ScheduledDate)
	assert.Equal(t, []string{"fridge", "oven"}, got.AddOns)
}

func TestService_LastWriteWins(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, logger.Nop())

	require.NoError(t, svc.Save(context.Background(), 5, domain.BookingDraft{ScheduledDate: "2026-11-26"}))
	require.NoError(t, svc.Save(context.Background(), 5, domain.BookingDraft{ScheduledDate: "2026-11-27"}))

	got, err := svc.Load(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "2026-11-27", got.ScheduledDate)
	assert.Equal(t, 2, repo.upserts)
}

func TestService_PutValidation(t *testing.T) {
	tests := []struct {
		name  string
		draft domain.BookingDraft
	}{
		{"negative duration", domain.BookingDraft{DurationHours: -1}},
		{"longer than a working day", domain.BookingDraft{DurationHours: domain.MaxDurationHours + 1}},
		{"bad service", domain.BookingDraft{ServiceType: "windows"}},
		{"bad date", domain.BookingDraft{ScheduledDate: "tomorrow"}},
		{"bad time", domain.BookingDraft{ScheduledTime: "25:99"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			_, err := NewService(repo, logger.Nop()).Put(context.Background(), 1, tt.draft)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, repo.upserts)
		})
	}
}

func TestService_RepositoryFailure(t *testing.T) {
	repo := newStubRepo()
	repo.upsertErr = errors.New("db down")
	repo.getErr = errors.New("db down")
	svc := NewService(repo, logger.Nop())

	err := svc.Save(context.Background(), 1, domain.BookingDraft{ScheduledDate: "2026-11-26"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Load(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
