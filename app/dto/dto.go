package dto

// APIResponse represents the standard API response structure used by the
// health endpoint and by transport-level error handlers. The six public
// ingestion endpoints answer with their own fixed acknowledgements instead.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail represents error details in API responses
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}

// TrackAck is the fixed acknowledgement of every tracking endpoint.
// It is returned regardless of business-level outcome.
type TrackAck struct {
	Success bool `json:"success"`
}

// LeadAck is the acknowledgement of the free-lesson lead endpoint; ID carries
// the server-generated lead identifier.
type LeadAck struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
