package models

import "time"

// VisitorSession represents one unique visitor of the landing site.
// SessionKey is an opaque token generated by the frontend (localStorage),
// never by the server. FirstVisit is set once, LastVisit on every touch.
// UserAgent and IPAddress are last-known values; UTM fields keep the
// first non-empty value unless a later call sends a non-empty replacement.
type VisitorSession struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionKey string    `gorm:"size:64;not null;uniqueIndex:uk_visitor_sessions_session_key" json:"session_key"`
	FirstVisit time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"first_visit"`
	LastVisit  time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_visitor_sessions_last_visit" json:"last_visit"`
	VisitCount uint      `gorm:"not null;default:1" json:"visit_count"`

	UserAgent string  `gorm:"type:text" json:"user_agent"`
	IPAddress *string `gorm:"size:64" json:"ip_address,omitempty"`

	UTMSource   string `gorm:"size:128" json:"utm_source"`
	UTMMedium   string `gorm:"size:128" json:"utm_medium"`
	UTMCampaign string `gorm:"size:128" json:"utm_campaign"`
	UTMContent  string `gorm:"size:128" json:"utm_content"`
	UTMTerm     string `gorm:"size:128" json:"utm_term"`
}

// TableName returns the table name for VisitorSession
func (VisitorSession) TableName() string { return "visitor_sessions" }

// VisitorSessionFilter provides filter fields for repository queries
type VisitorSessionFilter struct {
	ID            *uint
	SessionKey    *string
	UTMSource     *string
	UTMMedium     *string
	UTMCampaign   *string
	LastVisitFrom *time.Time
	LastVisitTo   *time.Time
}
