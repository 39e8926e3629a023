package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

func TestNewViewHolidayScenario(t *testing.T) {
	rate := 30.0
	b := Calculate(Input{
		EstimateAvailable: true,
		BaseRate:          &rate,
		DurationHours:     3,
		AddOns:            []string{"x", "y"},
		Holiday:           &domain.Holiday{Federal: true},
	})

	v := NewView(b)

	assert.Equal(t, 126.5, v.Subtotal)
	assert.Equal(t, 16.5, v.HolidayRate)
	assert.Equal(t, 12.65, v.PlatformFee)
	assert.Equal(t, 139.15, v.Total)
	assert.Equal(t, "$30/hr", v.Display.BaseRate)
	assert.Equal(t, "$16.50", v.Display.HolidayRate)
	assert.Equal(t, "$139.15", v.Display.Total)
}

func TestNewViewDegradedHidesFeeLines(t *testing.T) {
	v := NewView(Calculate(Input{DurationHours: 3}))

	assert.True(t, v.Degraded)
	assert.Equal(t, "$0/hr", v.Display.BaseRate)
	assert.Equal(t, "$0.00", v.Display.Total)
	assert.Empty(t, v.Display.PlatformFee)
	assert.Empty(t, v.Display.HolidayRate)
	assert.Empty(t, v.Display.AddOnCost)
}

func TestNewViewNoHolidayLine(t *testing.T) {
	rate := 30.0
	v := NewView(Calculate(Input{EstimateAvailable: true, BaseRate: &rate, DurationHours: 3}))

	assert.Equal(t, 99.0, v.Total)
	assert.Equal(t, "$9.00", v.Display.PlatformFee)
	assert.Empty(t, v.Display.HolidayRate)
}
