package models

import (
	"time"

	"github.com/google/uuid"
)

// FailedLead represents a partially filled signup form: a name without a
// phone, or a form that was opened and abandoned. Event is a free-form
// reason tag such as "abandoned" or "filled_name_only".
type FailedLead struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID *uint           `gorm:"index:idx_failed_leads_session_id" json:"session_id,omitempty"`
	Session   *VisitorSession `gorm:"foreignKey:SessionID;constraint:OnDelete:SET NULL" json:"-"`

	CourseSlug string `gorm:"size:128;index:idx_failed_leads_course_slug" json:"course_slug"`
	FullName   string `gorm:"size:255" json:"full_name"`
	Phone      string `gorm:"size:64" json:"phone"`
	Event      string `gorm:"size:64;index:idx_failed_leads_event" json:"event"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_failed_leads_created_at" json:"created_at"`
}

// TableName returns the table name for FailedLead
func (FailedLead) TableName() string { return "failed_leads" }

// FailedLeadFilter provides filter fields for repository queries
type FailedLeadFilter struct {
	ID            *uuid.UUID
	SessionID     *uint
	CourseSlug    *string
	Event         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
