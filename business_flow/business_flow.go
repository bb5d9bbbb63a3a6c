// Package businessflow contains the core business logic for analytics ingestion.
package businessflow

// ClientMetadata holds request-level client information passed from the
// transport layer into the flows. IPAddress is derived from network metadata
// and is never taken from the client payload.
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// pickNonEmpty implements the sticky-field rule shared by every attribution
// column: an incoming non-empty value replaces the stored one, an incoming
// empty value keeps it.
func pickNonEmpty(incoming, existing string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}
