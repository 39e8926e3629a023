package start_session

// StartSessionRequest HTTP request model
type StartSessionRequest struct {
	CleanerID string `json:"cleanerId"`
}
