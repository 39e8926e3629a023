package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestHasPersistableContent(t *testing.T) {
	d := NewBookingDraft()
	assert.False(t, d.HasPersistableContent(), "defaults alone are not worth saving")

	d.SpecialInstructions = "ring twice"
	assert.False(t, d.HasPersistableContent())

	d.ScheduledDate = "2026-11-26"
	assert.True(t, d.HasPersistableContent())

	d = NewBookingDraft()
	d.Address.City = "Austin"
	assert.True(t, d.HasPersistableContent())
}

func TestMergeSavedOverwritesDefaults(t *testing.T) {
	saved := BookingDraft{
		DurationHours: 5,
		ScheduledDate: "2026-12-24",
		Address:       Address{Street: "1 Main St", Zip: "78701"},
		AddOns:        []string{"oven", "fridge", "oven"},
	}

	merged := NewBookingDraft().Merge(saved)

	assert.Equal(t, ServiceStandard, merged.ServiceType, "unset saved field keeps default")
	assert.Equal(t, 5, merged.DurationHours)
	assert.Equal(t, "2026-12-24", merged.ScheduledDate)
	assert.Equal(t, "1 Main St", merged.Address.Street)
	assert.Equal(t, "78701", merged.Address.Zip)
	assert.Equal(t, []string{"fridge", "oven"}, merged.AddOns)
}

func TestCloneDoesNotShareAddOns(t *testing.T) {
	d := BookingDraft{AddOns: []string{"a"}}
	c := d.Clone()
	c.AddOns[0] = "b"
	assert.Equal(t, "a", d.AddOns[0])
}

func TestSameAddOnsIgnoresOrder(t *testing.T) {
	assert.True(t, SameAddOns([]string{"x", "y"}, []string{"y", "x"}))
	assert.True(t, SameAddOns(nil, []string{}))
	assert.False(t, SameAddOns([]string{"x"}, []string{"x", "y"}))
}

func TestParseServiceType(t *testing.T) {
	st, err := ParseServiceType("move_in_out")
	require.NoError(t, err)
	assert.Equal(t, ServiceMoveInOut, st)

	_, err = ParseServiceType("window")
	assert.ErrorIs(t, err, ErrInvalidServiceType)
}
