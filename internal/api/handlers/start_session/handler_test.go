package start_session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingWizard/internal/api/middleware"
	"github.com/m04kA/SMC-BookingWizard/internal/wizard"
	"github.com/m04kA/SMC-BookingWizard/pkg/logger"
)

type stubManager struct {
	err       error
	cleanerID string
}

func (m *stubManager) Start(_ context.Context, _ int64, cleanerID string) (*wizard.Session, error) {
	m.cleanerID = cleanerID
	return nil, m.err
}

func TestHandler_StartErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		body   string
		err    error
		status int
	}{
		{"no user", 0, `{"cleanerId":"cl-1"}`, nil, http.StatusUnauthorized},
		{"bad body", 7, `cleaner`, nil, http.StatusBadRequest},
		{"no cleaner", 7, `{"cleanerId":""}`, wizard.ErrCleanerRequired, http.StatusBadRequest},
		{"unknown cleaner", 7, `{"cleanerId":"cl-x"}`, wizard.ErrCleanerNotFound, http.StatusNotFound},
		{"marketplace down", 7, `{"cleanerId":"cl-1"}`, fmt.Errorf("%w: timeout", wizard.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubManager{err: tt.err}, logger.Nop())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions", strings.NewReader(tt.body))
			if tt.userID > 0 {
				req = req.WithContext(middleware.WithUserID(req.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_StartPassesCleanerID(t *testing.T) {
	m := &stubManager{err: wizard.ErrCleanerNotFound}
	h := NewHandler(m, logger.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wizard/sessions", strings.NewReader(`{"cleanerId":"cl-42"}`))
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	h.Handle(httptest.NewRecorder(), req)

	assert.Equal(t, "cl-42", m.cleanerID)
}
