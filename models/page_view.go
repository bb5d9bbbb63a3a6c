package models

import "time"

// PageView represents a single page load reported by the frontend.
// SessionID is populated whenever a session was resolved for the call;
// rows are removed together with their session.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID *uint     `gorm:"index:idx_page_views_session_id" json:"session_id,omitempty"`
	Session   *VisitorSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	PagePath  string    `gorm:"size:255;index:idx_page_views_page_path" json:"page_path"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_page_views_created_at" json:"created_at"`
}

// TableName returns the table name for PageView
func (PageView) TableName() string { return "page_views" }

// PageViewFilter provides filter fields for repository queries
type PageViewFilter struct {
	ID            *uint
	SessionID     *uint
	PagePath      *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
