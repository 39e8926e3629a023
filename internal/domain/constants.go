package domain

import "time"

// Pricing constants
const (
	AddOnPrice        = 10.00 // flat price per selected add-on
	HolidayMultiplier = 1.15  // applied to base+add-ons on federal holidays
	PlatformFeeRate   = 0.10  // charged on the post-surcharge subtotal
)

// Draft defaults
const (
	DefaultServiceType   = ServiceStandard
	DefaultDurationHours = 3
	MaxDurationHours     = 12
	MaxInstructionsLen   = 1000
	MaxAddOns            = 20
)

// AutosaveDelay quiet period after the last edit before a draft is saved
const AutosaveDelay = 2000 * time.Millisecond

// MaxSessionNotices number of notices kept per wizard session
const MaxSessionNotices = 20

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
