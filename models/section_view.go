package models

import "time"

// SectionView represents a landing-page section becoming visible in the
// viewport. VisibleRatio is the fraction of the section height shown (0-1)
// and is stored exactly as reported, or left null when absent.
type SectionView struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SessionID    *uint           `gorm:"index:idx_section_views_session_id" json:"session_id,omitempty"`
	Session      *VisitorSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	PagePath     string          `gorm:"size:255;index:idx_section_views_page_path" json:"page_path"`
	SectionID    string          `gorm:"size:64;index:idx_section_views_section_id" json:"section_id"`
	VisibleRatio *float64        `json:"visible_ratio,omitempty"`
	CreatedAt    time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_section_views_created_at" json:"created_at"`
}

// TableName returns the table name for SectionView
func (SectionView) TableName() string { return "section_views" }

// SectionViewFilter provides filter fields for repository queries
type SectionViewFilter struct {
	ID            *uint
	SessionID     *uint
	PagePath      *string
	SectionID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
