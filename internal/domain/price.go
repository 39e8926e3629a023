package domain

// PriceBreakdown derived price of the current draft
// Always recomputed from scratch and replaced wholesale, never mutated.
type PriceBreakdown struct {
	// Degraded is set while no price estimate has resolved:
	// only BaseRate, DurationHours, BaseCost and Total are meaningful.
	Degraded bool

	BaseRate          float64
	DurationHours     int
	BaseCost          float64
	AddOnCount        int
	AddOnCost         float64
	HolidayMultiplier float64
	HolidayRate       float64
	Subtotal          float64
	PlatformFee       float64
	Total             float64
}

// HasHolidaySurcharge returns true if a holiday uplift was applied
func (p PriceBreakdown) HasHolidaySurcharge() bool {
	return !p.Degraded && p.HolidayMultiplier > 1
}
