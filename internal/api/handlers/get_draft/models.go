package get_draft

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// DraftResponse HTTP response model
type DraftResponse struct {
	Draft     domain.BookingDraft `json:"draft"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// FromDomain конвертирует domain.SavedDraft в DraftResponse
func FromDomain(saved *domain.SavedDraft) DraftResponse {
	return DraftResponse{
		Draft:     saved.Draft,
		UpdatedAt: saved.UpdatedAt,
	}
}
