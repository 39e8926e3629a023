package put_draft

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// PutDraftRequest HTTP request model, черновик целиком
type PutDraftRequest struct {
	Draft domain.BookingDraft `json:"draft"`
}

// DraftResponse HTTP response model
type DraftResponse struct {
	Draft     domain.BookingDraft `json:"draft"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
