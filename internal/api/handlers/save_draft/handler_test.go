package save_draft

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
	createBooking "github.com/m04kA/SMC-BookingWizard/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

type stubDrafts struct {
	mu    sync.Mutex
	err   error
	saves int
}

func (d *stubDrafts) Load(context.Context, int64) (*domain.BookingDraft, error) { return nil, nil }

func (d *stubDrafts) Save(context.Context, int64, domain.BookingDraft) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.saves++
	return d.err
}

func (d *stubDrafts) Saves() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saves
}

type stubMarketplace struct{}

func (stubMarketplace) GetCleaner(_ context.Context, id string) (*marketplace.Cleaner, error) {
	rate := 30.0
	return &marketplace.Cleaner{ID: id, Name: "Ana", PricePerHour: &rate}, nil
}

func (stubMarketplace) EstimatePrice(context.Context, *marketplace.EstimateRequest) (*marketplace.Estimate, error) {
	return &marketplace.Estimate{Price: 90}, nil
}

type stubHolidays struct{}

func (stubHolidays) LookupHoliday(context.Context, string) (*domain.Holiday, error) { return nil, nil }

type stubCreator struct{}

func (stubCreator) Execute(context.Context, *createBooking.Request) (*createBooking.Response, error) {
	return nil, createBooking.ErrInternal
}

func newSession(t *testing.T, drafts *stubDrafts) (*wizard.Manager, *wizard.Session) {
	t.Helper()
	m := wizard.NewManager(wizard.Dependencies{
		Drafts:      drafts,
		Marketplace: stubMarketplace{},
		Holidays:    stubHolidays{},
		Creator:     stubCreator{},
		Logger:      logger.Nop(),
	}, wizard.DefaultConfig())
	t.Cleanup(m.Shutdown)

	s, err := m.Start(context.Background(), 7, "cl-1")
	require.NoError(t, err)
	return m, s
}

func save(h *Handler, sessionID string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sessionID+"/draft/save", nil)
	req = mux.SetURLVars(req, map[string]string{"sessionId": sessionID})
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_SaveDraft(t *testing.T) {
	drafts := &stubDrafts{}
	m, s := newSession(t, drafts)
	h := NewHandler(m, logger.Nop())

	rec := save(h, s.ID(), 7)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, drafts.Saves())

	var view wizard.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotEmpty(t, view.Notices)
	assert.Equal(t, "Draft saved", view.Notices[len(view.Notices)-1].Title)
}

func TestHandler_SaveDraftFailure(t *testing.T) {
	drafts := &stubDrafts{err: errors.New("db down")}
	m, s := newSession(t, drafts)
	h := NewHandler(m, logger.Nop())

	rec := save(h, s.ID(), 7)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, msgSaveFailed, body.Error.Message)
	for _, n := range s.View().Notices {
		assert.NotEqual(t, "Draft saved", n.Title)
	}
}

func TestHandler_SaveDraftSessionErrors(t *testing.T) {
	drafts := &stubDrafts{}
	m, s := newSession(t, drafts)
	h := NewHandler(m, logger.Nop())

	tests := []struct {
		name      string
		sessionID string
		userID    int64
		status    int
	}{
		{"unknown session", "missing", 7, http.StatusNotFound},
		{"foreign user", s.ID(), 8, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := save(h, tt.sessionID, tt.userID)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Zero(t, drafts.Saves())
}
