package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ClickEventMeta is the arbitrary JSON payload attached to a click event
type ClickEventMeta map[string]any

// Value implements the driver.Valuer interface for ClickEventMeta
func (m ClickEventMeta) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(map[string]any{})
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for ClickEventMeta
func (m *ClickEventMeta) Scan(value any) error {
	if value == nil {
		*m = ClickEventMeta{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ClickEventMeta", value)
	}

	return json.Unmarshal(bytes, m)
}

// ClickEvent represents a click on one of the tracked controls, e.g.
// free_lesson_click, buy_click, trailer_play, appstore_click.
// Meta carries an arbitrary JSON payload and is never null; callers that
// omit it get an empty object.
type ClickEvent struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SessionID *uint           `gorm:"index:idx_click_events_session_id" json:"session_id,omitempty"`
	Session   *VisitorSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	PagePath  string          `gorm:"size:255;index:idx_click_events_page_path" json:"page_path"`
	EventID   string          `gorm:"size:64;index:idx_click_events_event_id" json:"event_id"`
	Meta      ClickEventMeta  `gorm:"type:jsonb;default:'{}'" json:"meta"`
	CreatedAt time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_click_events_created_at" json:"created_at"`
}

// TableName returns the table name for ClickEvent
func (ClickEvent) TableName() string { return "click_events" }

// ClickEventFilter provides filter fields for repository queries
type ClickEventFilter struct {
	ID            *uint
	SessionID     *uint
	PagePath      *string
	EventID       *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
