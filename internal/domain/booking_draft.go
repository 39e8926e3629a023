package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ServiceType kind of cleaning requested
type ServiceType string

const (
	ServiceStandard  ServiceType = "standard"
	ServiceDeep      ServiceType = "deep"
	ServiceMoveInOut ServiceType = "move_in_out"
)

// ErrInvalidServiceType returned by ParseServiceType for unknown values
var ErrInvalidServiceType = errors.New("invalid service type")

// ParseServiceType validates a service type coming from a client
func ParseServiceType(s string) (ServiceType, error) {
	switch st := ServiceType(strings.TrimSpace(s)); st {
	case ServiceStandard, ServiceDeep, ServiceMoveInOut:
		return st, nil
	default:
		return "", ErrInvalidServiceType
	}
}

// Address service location entered on the address step
type Address struct {
	Street string `json:"street,omitempty"`
	Line2  string `json:"line2,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// IsEmpty returns true if no address field has been filled in
func (a Address) IsEmpty() bool {
	return strings.TrimSpace(a.Street) == "" &&
		strings.TrimSpace(a.Line2) == "" &&
		strings.TrimSpace(a.City) == "" &&
		strings.TrimSpace(a.State) == "" &&
		strings.TrimSpace(a.Zip) == ""
}

// BookingDraft mutable booking form state of a wizard session
// The JSON form is also the persisted draft format, so every field is omitempty:
// a saved draft is an arbitrary subset of fields.
type BookingDraft struct {
	ServiceType         ServiceType `json:"service_type,omitempty"`
	DurationHours       int         `json:"duration_hours,omitempty"`
	ScheduledDate       string      `json:"scheduled_date,omitempty"` // "2026-11-26"
	ScheduledTime       string      `json:"scheduled_time,omitempty"` // "10:00"
	Address             Address     `json:"address"`
	SpecialInstructions string      `json:"special_instructions,omitempty"`
	AddOns              []string    `json:"add_ons,omitempty"`
}

// NewBookingDraft returns an empty draft with form defaults
func NewBookingDraft() BookingDraft {
	return BookingDraft{
		ServiceType:   DefaultServiceType,
		DurationHours: DefaultDurationHours,
	}
}

// Clone returns a deep copy
func (d BookingDraft) Clone() BookingDraft {
	c := d
	if d.AddOns != nil {
		c.AddOns = append([]string(nil), d.AddOns...)
	}
	return c
}

// HasPersistableContent returns true if the draft is worth saving:
// an address or a scheduled date has been entered
func (d BookingDraft) HasPersistableContent() bool {
	return !d.Address.IsEmpty() || strings.TrimSpace(d.ScheduledDate) != ""
}

// HasSchedule returns true if both date and time are set
func (d BookingDraft) HasSchedule() bool {
	return d.ScheduledDate != "" && d.ScheduledTime != ""
}

// Merge overlays non-zero fields of a saved draft on top of d
func (d BookingDraft) Merge(saved BookingDraft) BookingDraft {
	out := d.Clone()
	if saved.ServiceType != "" {
		out.ServiceType = saved.ServiceType
	}
	if saved.DurationHours > 0 {
		out.DurationHours = saved.DurationHours
	}
	if saved.ScheduledDate != "" {
		out.ScheduledDate = saved.ScheduledDate
	}
	if saved.ScheduledTime != "" {
		out.ScheduledTime = saved.ScheduledTime
	}
	if saved.Address.Street != "" {
		out.Address.Street = saved.Address.Street
	}
	if saved.Address.Line2 != "" {
		out.Address.Line2 = saved.Address.Line2
	}
	if saved.Address.City != "" {
		out.Address.City = saved.Address.City
	}
	if saved.Address.State != "" {
		out.Address.State = saved.Address.State
	}
	if saved.Address.Zip != "" {
		out.Address.Zip = saved.Address.Zip
	}
	if saved.SpecialInstructions != "" {
		out.SpecialInstructions = saved.SpecialInstructions
	}
	if len(saved.AddOns) > 0 {
		out.AddOns = NormalizeAddOns(saved.AddOns)
	}
	return out
}

// NormalizeAddOns turns a list of add-on identifiers into a set:
// trimmed, de-duplicated, empty entries dropped, sorted
func NormalizeAddOns(addOns []string) []string {
	if len(addOns) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(addOns))
	out := make([]string, 0, len(addOns))
	for _, a := range addOns {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	sort.Strings(out)
	return out
}

// SameAddOns compares two add-on sets ignoring order
func SameAddOns(a, b []string) bool {
	na, nb := NormalizeAddOns(a), NormalizeAddOns(b)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

// SavedDraft draft as held by the draft store, one per user
type SavedDraft struct {
	UserID    int64
	Draft     BookingDraft
	UpdatedAt time.Time
}
