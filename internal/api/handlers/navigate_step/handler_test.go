package navigate_step

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/integrations/marketplace"
	createBooking "github.com/m04kA/SMC-BookingWizard/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

type stubDrafts struct{}

func (stubDrafts) Load(context.Context, int64) (*domain.BookingDraft, error) { return nil, nil }
func (stubDrafts) Save(context.Context, int64, domain.BookingDraft) error    { return nil }

type stubMarketplace struct{}

func (stubMarketplace) GetCleaner(_ context.Context, id string) (*marketplace.Cleaner, error) {
	return &marketplace.Cleaner{ID: id, Name: "Ana"}, nil
}

func (stubMarketplace) EstimatePrice(context.Context, *marketplace.EstimateRequest) (*marketplace.Estimate, error) {
	return &marketplace.Estimate{Price: 0}, nil
}

type stubHolidays struct{}

func (stubHolidays) LookupHoliday(context.Context, string) (*domain.Holiday, error) { return nil, nil }

type stubCreator struct{}

func (stubCreator) Execute(context.Context, *createBooking.Request) (*createBooking.Response, error) {
	return nil, createBooking.ErrInternal
}

func newManager(t *testing.T) *wizard.Manager {
	t.Helper()
	m := wizard.NewManager(wizard.Dependencies{
		Drafts:      stubDrafts{},
		Marketplace: stubMarketplace{},
		Holidays:    stubHolidays{},
		Creator:     stubCreator{},
		Logger:      logger.Nop(),
	}, wizard.DefaultConfig())
	t.Cleanup(m.Shutdown)
	return m
}

func call(fn http.HandlerFunc, sessionID string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions/"+sessionID+"/next", nil)
	req = mux.SetURLVars(req, map[string]string{"sessionId": sessionID})
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) wizard.View {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	var view wizard.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestHandler_NextAndBack(t *testing.T) {
	m := newManager(t)
	s, err := m.Start(context.Background(), 7, "cl-1")
	require.NoError(t, err)
	h := NewHandler(m, logger.Nop())

	view := decodeView(t, call(h.HandleBack, s.ID(), 7))
	assert.Equal(t, domain.StepService, view.Step, "back on the first step is a no-op")
	assert.False(t, view.CanGoBack)

	for want := domain.StepDateTime; want <= domain.StepConfirm; want++ {
		view = decodeView(t, call(h.HandleNext, s.ID(), 7))
		assert.Equal(t, want, view.Step)
	}
	assert.Equal(t, wizard.ActionSubmit, view.PrimaryAction)

	view = decodeView(t, call(h.HandleNext, s.ID(), 7))
	assert.Equal(t, domain.StepConfirm, view.Step, "next on the confirm step is a no-op")

	view = decodeView(t, call(h.HandleBack, s.ID(), 7))
	assert.Equal(t, domain.StepAddress, view.Step)
	assert.Equal(t, wizard.ActionNext, view.PrimaryAction)
}

func TestHandler_NavigateForeignSession(t *testing.T) {
	m := newManager(t)
	s, err := m.Start(context.Background(), 7, "cl-1")
	require.NoError(t, err)
	h := NewHandler(m, logger.Nop())

	rec := call(h.HandleNext, s.ID(), 8)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, domain.StepService, s.View().Step)
}
