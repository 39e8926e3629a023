package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidDuration duration_hours must be a positive number of hours
	ErrInvalidDuration = errors.New("duration_hours must be positive")

	// ErrInvalidDate scheduled_date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("scheduled_date must be YYYY-MM-DD")

	// ErrInvalidTime scheduled_time is not HH:MM
	ErrInvalidTime = errors.New("scheduled_time must be HH:MM")

	// ErrInvalidDraftField any other field constraint violation
	ErrInvalidDraftField = errors.New("invalid draft field")
)

// AddressPatch partial update of the address; nil fields are left untouched
type AddressPatch struct {
	Street *string `json:"street,omitempty"`
	Line2  *string `json:"line2,omitempty"`
	City   *string `json:"city,omitempty"`
	State  *string `json:"state,omitempty"`
	Zip    *string `json:"zip,omitempty"`
}

// DraftPatch one form edit; nil fields are left untouched
type DraftPatch struct {
	ServiceType         *string       `json:"service_type,omitempty"`
	DurationHours       *int          `json:"duration_hours,omitempty"`
	ScheduledDate       *string       `json:"scheduled_date,omitempty"`
	ScheduledTime       *string       `json:"scheduled_time,omitempty"`
	Address             *AddressPatch `json:"address,omitempty"`
	SpecialInstructions *string       `json:"special_instructions,omitempty"`
	AddOns              *[]string     `json:"add_ons,omitempty"`
}

// DraftChanges what an applied patch actually changed
type DraftChanges struct {
	Changed        bool // any field changed
	DateChanged    bool // scheduled_date changed
	PricingChanged bool // service_type, duration_hours or add_ons changed
}

// Apply validates the patch and applies it to d.
// Nothing is modified when validation fails.
func (p DraftPatch) Apply(d *BookingDraft) (DraftChanges, error) {
	if err := p.Validate(); err != nil {
		return DraftChanges{}, err
	}

	var ch DraftChanges

	if p.ServiceType != nil {
		st, _ := ParseServiceType(*p.ServiceType)
		if st != d.ServiceType {
			d.ServiceType = st
			ch.PricingChanged = true
		}
	}
	if p.DurationHours != nil && *p.DurationHours != d.DurationHours {
		d.DurationHours = *p.DurationHours
		ch.PricingChanged = true
	}
	if p.ScheduledDate != nil {
		date := strings.TrimSpace(*p.ScheduledDate)
		if date != d.ScheduledDate {
			d.ScheduledDate = date
			ch.DateChanged = true
		}
	}
	if p.ScheduledTime != nil {
		tm := strings.TrimSpace(*p.ScheduledTime)
		if tm != d.ScheduledTime {
			d.ScheduledTime = tm
			ch.Changed = true
		}
	}
	if p.Address != nil {
		for _, f := range []struct {
			dst *string
			v   *string
		}{
			{&d.Address.Street, p.Address.Street},
			{&d.Address.Line2, p.Address.Line2},
			{&d.Address.City, p.Address.City},
			{&d.Address.State, p.Address.State},
			{&d.Address.Zip, p.Address.Zip},
		} {
			if applyString(f.dst, f.v) {
				ch.Changed = true
			}
		}
	}
	if applyString(&d.SpecialInstructions, p.SpecialInstructions) {
		ch.Changed = true
	}
	if p.AddOns != nil && !SameAddOns(d.AddOns, *p.AddOns) {
		d.AddOns = NormalizeAddOns(*p.AddOns)
		ch.PricingChanged = true
	}

	ch.Changed = ch.Changed || ch.DateChanged || ch.PricingChanged
	return ch, nil
}

// Validate checks field formats without touching any draft
func (p DraftPatch) Validate() error {
	if p.ServiceType != nil {
		if _, err := ParseServiceType(*p.ServiceType); err != nil {
			return err
		}
	}
	if p.DurationHours != nil {
		if *p.DurationHours <= 0 {
			return ErrInvalidDuration
		}
		if *p.DurationHours > MaxDurationHours {
			return fmt.Errorf("%w: duration_hours must be at most %d", ErrInvalidDraftField, MaxDurationHours)
		}
	}
	if p.ScheduledDate != nil && strings.TrimSpace(*p.ScheduledDate) != "" {
		if _, err := time.Parse(DateFormat, strings.TrimSpace(*p.ScheduledDate)); err != nil {
			return ErrInvalidDate
		}
	}
	if p.ScheduledTime != nil && strings.TrimSpace(*p.ScheduledTime) != "" {
		if _, err := time.Parse(TimeFormat, strings.TrimSpace(*p.ScheduledTime)); err != nil {
			return ErrInvalidTime
		}
	}
	if p.SpecialInstructions != nil && len(*p.SpecialInstructions) > MaxInstructionsLen {
		return fmt.Errorf("%w: special_instructions longer than %d characters", ErrInvalidDraftField, MaxInstructionsLen)
	}
	if p.AddOns != nil && len(NormalizeAddOns(*p.AddOns)) > MaxAddOns {
		return fmt.Errorf("%w: at most %d add-ons", ErrInvalidDraftField, MaxAddOns)
	}
	return nil
}

// IsEmpty returns true if the patch carries no fields
func (p DraftPatch) IsEmpty() bool {
	return p.ServiceType == nil && p.DurationHours == nil && p.ScheduledDate == nil &&
		p.ScheduledTime == nil && p.Address == nil && p.SpecialInstructions == nil && p.AddOns == nil
}

func applyString(dst *string, v *string) bool {
	if v == nil || *v == *dst {
		return false
	}
	*dst = *v
	return true
}
