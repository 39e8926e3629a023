package domain

// Cleaner cleaner selected for the booking, as returned by the marketplace
type Cleaner struct {
	ID           string
	Name         string
	PricePerHour *float64 // nil when the cleaner has not published a rate
	Rating       float64
	ReviewsCount int
}

// BaseRate returns the hourly rate, 0 if unknown
func (c *Cleaner) BaseRate() float64 {
	if c == nil || c.PricePerHour == nil {
		return 0
	}
	return *c.PricePerHour
}
