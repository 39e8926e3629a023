package quote_price

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/internal/service/pricing"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	PricePerHour      *float64 `json:"pricePerHour"`
	DurationHours     int      `json:"durationHours"`
	AddOns            []string `json:"addOns"`
	Holiday           *string  `json:"holiday"` // название праздника; null - обычный день
	EstimateAvailable *bool    `json:"estimateAvailable"`
}

// ToInput конвертирует запрос во вход калькулятора
// Без estimateAvailable считается, что оценка получена: котировка всегда полная
func (r QuoteRequest) ToInput() pricing.Input {
	in := pricing.Input{
		EstimateAvailable: true,
		BaseRate:          r.PricePerHour,
		DurationHours:     r.DurationHours,
		AddOns:            r.AddOns,
	}
	if r.EstimateAvailable != nil {
		in.EstimateAvailable = *r.EstimateAvailable
	}
	if r.Holiday != nil {
		in.Holiday = &domain.Holiday{Name: *r.Holiday, Federal: true}
	}
	return in
}
