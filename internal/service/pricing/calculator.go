package pricing

import (
	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Input всё, от чего зависит разбивка цены
type Input struct {
	// EstimateAvailable хотя бы одна оценка цены от маркетплейса успешно получена
	EstimateAvailable bool
	// BaseRate ставка клинера в час; nil трактуется как 0
	BaseRate      *float64
	DurationHours int
	AddOns        []string
	// Holiday nil, если дата не праздничная или проверка ещё не завершилась
	Holiday *domain.Holiday
}

// Calculate чистая функция: одинаковый вход всегда даёт одинаковую разбивку
//
//	baseCost    = baseRate * duration
//	addOnCost   = count(addOns) * 10
//	subtotal    = (baseCost + addOnCost) * (1.15 на праздник, иначе 1.00)
//	holidayRate = subtotal - (baseCost + addOnCost)
//	platformFee = subtotal * 0.10
//	total       = subtotal + platformFee
//
// Пока оценка цены не получена, возвращается упрощённая разбивка: только baseRate * duration
func Calculate(in Input) domain.PriceBreakdown {
	rate := 0.0
	if in.BaseRate != nil {
		rate = *in.BaseRate
	}
	baseCost := rate * float64(in.DurationHours)

	if !in.EstimateAvailable {
		return domain.PriceBreakdown{
			Degraded:          true,
			BaseRate:          rate,
			DurationHours:     in.DurationHours,
			BaseCost:          baseCost,
			HolidayMultiplier: 1,
			Subtotal:          baseCost,
			Total:             baseCost,
		}
	}

	addOnCount := len(domain.NormalizeAddOns(in.AddOns))
	addOnCost := float64(addOnCount) * domain.AddOnPrice

	multiplier := 1.0
	if in.Holiday != nil {
		multiplier = domain.HolidayMultiplier
	}

	preSurcharge := baseCost + addOnCost
	subtotal := preSurcharge * multiplier
	platformFee := subtotal * domain.PlatformFeeRate

	return domain.PriceBreakdown{
		BaseRate:          rate,
		DurationHours:     in.DurationHours,
		BaseCost:          baseCost,
		AddOnCount:        addOnCount,
		AddOnCost:         addOnCost,
		HolidayMultiplier: multiplier,
		HolidayRate:       subtotal - preSurcharge,
		Subtotal:          subtotal,
		PlatformFee:       platformFee,
		Total:             subtotal + platformFee,
	}
}
