package models

import (
	"time"

	"github.com/google/uuid"
)

// FreeLessonLead represents a completed free-lesson signup form: full name
// and phone only, no SMS confirmation step. The session link is weak; when
// the session is removed the lead survives with the link cleared.
type FreeLessonLead struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID *uint           `gorm:"index:idx_free_lesson_leads_session_id" json:"session_id,omitempty"`
	Session   *VisitorSession `gorm:"foreignKey:SessionID;constraint:OnDelete:SET NULL" json:"-"`

	CourseSlug string `gorm:"size:128;index:idx_free_lesson_leads_course_slug" json:"course_slug"`
	FullName   string `gorm:"size:255" json:"full_name"`
	Phone      string `gorm:"size:64;index:idx_free_lesson_leads_phone" json:"phone"`

	Source        string `gorm:"size:64;default:'free_lesson_popup';index:idx_free_lesson_leads_source" json:"source"`
	IsValidNumber bool   `gorm:"not null;default:true" json:"is_valid_number"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_free_lesson_leads_created_at" json:"created_at"`
}

// TableName returns the table name for FreeLessonLead
func (FreeLessonLead) TableName() string { return "free_lesson_leads" }

// FreeLessonLeadFilter provides filter fields for repository queries
type FreeLessonLeadFilter struct {
	ID            *uuid.UUID
	SessionID     *uint
	CourseSlug    *string
	Phone         *string
	IsValidNumber *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
