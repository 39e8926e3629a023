package wizard

import (
	"time"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/service/pricing"
	"github.com/m04kA/SMC-BookingWizard/pkg/money"
)

// View snapshot of a session as returned by the API
type View struct {
	SessionID     string              `json:"sessionId"`
	Cleaner       CleanerView         `json:"cleaner"`
	Step          domain.WizardStep   `json:"step"`
	StepName      string              `json:"stepName"`
	Direction     string              `json:"direction"`
	PrimaryAction string              `json:"primaryAction"`
	CanGoBack     bool                `json:"canGoBack"`
	Draft         domain.BookingDraft `json:"draft"`

	// Holiday is hidden while a lookup is in flight so a stale banner never flashes
	Holiday        *domain.Holiday `json:"holiday"`
	HolidayLoading bool            `json:"holidayLoading"`

	EstimateLoading   bool     `json:"estimateLoading"`
	EstimateAvailable bool     `json:"estimateAvailable"`
	EstimatedPrice    *float64 `json:"estimatedPrice,omitempty"`

	Breakdown pricing.View    `json:"breakdown"`
	Notices   []domain.Notice `json:"notices"`

	AutosavePending bool         `json:"autosavePending"`
	Submitting      bool         `json:"submitting"`
	Booking         *BookingView `json:"booking,omitempty"`
}

// CleanerView cleaner card shown in the wizard header
type CleanerView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Rate         string  `json:"rate"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviewsCount"`
}

// BookingView booking created by this session
type BookingView struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	ScheduledAt    string   `json:"scheduledAt"`
	ScheduledEndAt string   `json:"scheduledEndAt"`
	TotalPrice     *float64 `json:"totalPrice,omitempty"`
}

func (s *Session) viewLocked() View {
	v := View{
		SessionID: s.id,
		Cleaner: CleanerView{
			ID:           s.cleaner.ID,
			Name:         s.cleaner.Name,
			Rate:         money.PerHour(s.cleaner.BaseRate()),
			Rating:       s.cleaner.Rating,
			ReviewsCount: s.cleaner.ReviewsCount,
		},
		Step:              s.steps.Step(),
		StepName:          s.steps.Step().String(),
		Direction:         s.steps.Direction().String(),
		PrimaryAction:     s.steps.PrimaryAction(),
		CanGoBack:         s.steps.CanRetreat(),
		Draft:             s.draft.Clone(),
		HolidayLoading:    s.holidayLoading,
		EstimateLoading:   s.estimateLoading,
		EstimateAvailable: s.estimateAvailable,
		Breakdown:         pricing.NewView(s.breakdown),
		Notices:           append([]domain.Notice{}, s.notices...),
		AutosavePending:   s.autosaver.Pending(),
		Submitting:        s.submitting,
	}

	if !s.holidayLoading && s.holiday != nil {
		h := *s.holiday
		v.Holiday = &h
	}
	if s.estimatePrice != nil {
		p := money.Round(*s.estimatePrice)
		v.EstimatedPrice = &p
	}
	if s.booking != nil {
		v.Booking = &BookingView{
			ID:             s.booking.ID,
			Status:         string(s.booking.Status),
			ScheduledAt:    s.booking.ScheduledAt.UTC().Format(time.RFC3339),
			ScheduledEndAt: s.booking.ScheduledEndAt.UTC().Format(time.RFC3339),
			TotalPrice:     s.booking.TotalPrice,
		}
	}
	return v
}
