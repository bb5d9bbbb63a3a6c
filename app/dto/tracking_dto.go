package dto

// RegisterSessionRequest is the payload of POST /api/track/register-session/.
// Every field is optional; a missing session_id turns the call into a no-op
// that is still acknowledged.
type RegisterSessionRequest struct {
	SessionID   string `json:"session_id"`
	UserAgent   string `json:"user_agent"`
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
	UTMTerm     string `json:"utm_term"`
}

// PageViewRequest is the payload of POST /api/track/page-view/.
type PageViewRequest struct {
	SessionID string `json:"session_id"`
	PagePath  string `json:"page_path"`
	UserAgent string `json:"user_agent"`
}

// SectionViewRequest is the payload of POST /api/track/section-view/.
// VisibleRatio stays nil when the frontend omits it.
type SectionViewRequest struct {
	SessionID    string   `json:"session_id"`
	PagePath     string   `json:"page_path"`
	SectionID    string   `json:"section_id"`
	VisibleRatio *float64 `json:"visible_ratio"`
}

// ClickEventRequest is the payload of POST /api/track/event/.
type ClickEventRequest struct {
	SessionID string         `json:"session_id"`
	PagePath  string         `json:"page_path"`
	EventID   string         `json:"event_id"`
	Meta      map[string]any `json:"meta"`
}
