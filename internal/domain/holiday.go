package domain

// Holiday result of the holiday-by-date lookup
type Holiday struct {
	Name           string `json:"name,omitempty"`
	Federal        bool   `json:"federal"`
	SupportLimited bool   `json:"support_limited"`
}
