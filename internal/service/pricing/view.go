package pricing

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
	"github.com/m04kA/SMC-BookingWizard/pkg/money"
)

// View разбивка цены для ответа API: суммы округлены до центов только здесь
type View struct {
	Degraded          bool    `json:"degraded"`
	BaseRate          float64 `json:"baseRate"`
	DurationHours     int     `json:"durationHours"`
	BaseCost          float64 `json:"baseCost"`
	AddOnCount        int     `json:"addOnCount"`
	AddOnCost         float64 `json:"addOnCost"`
	HolidayMultiplier float64 `json:"holidayMultiplier"`
	HolidayRate       float64 `json:"holidayRate"`
	Subtotal          float64 `json:"subtotal"`
	PlatformFee       float64 `json:"platformFee"`
	Total             float64 `json:"total"`
	Display           Display `json:"display"`
}

// Display строки для отображения
type Display struct {
	BaseRate    string `json:"baseRate"`
	BaseCost    string `json:"baseCost"`
	AddOnCost   string `json:"addOnCost,omitempty"`
	HolidayRate string `json:"holidayRate,omitempty"`
	PlatformFee string `json:"platformFee,omitempty"`
	Total       string `json:"total"`
}

// NewView конвертирует разбивку в модель ответа
// В упрощённой разбивке строки комиссии и праздничной надбавки не показываются
func NewView(b domain.PriceBreakdown) View {
	v := View{
		Degraded:          b.Degraded,
		BaseRate:          money.Round(b.BaseRate),
		DurationHours:     b.DurationHours,
		BaseCost:          money.Round(b.BaseCost),
		AddOnCount:        b.AddOnCount,
		AddOnCost:         money.Round(b.AddOnCost),
		HolidayMultiplier: b.HolidayMultiplier,
		HolidayRate:       money.Round(b.HolidayRate),
		Subtotal:          money.Round(b.Subtotal),
		PlatformFee:       money.Round(b.PlatformFee),
		Total:             money.Round(b.Total),
		Display: Display{
			BaseRate: money.PerHour(b.BaseRate),
			BaseCost: money.Format(b.BaseCost),
			Total:    money.Format(b.Total),
		},
	}

	if b.Degraded {
		return v
	}

	v.Display.AddOnCost = money.Format(b.AddOnCost)
	v.Display.PlatformFee = money.Format(b.PlatformFee)
	if b.HasHolidaySurcharge() {
		v.Display.HolidayRate = money.Format(b.HolidayRate)
	}
	return v
}
