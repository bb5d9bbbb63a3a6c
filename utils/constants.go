package utils

import (
	"time"
)

// Ingestion defaults applied when the frontend omits a field
const (
	// DefaultPagePath is recorded when a tracking call carries no page_path
	DefaultPagePath = "/"

	// DefaultCourseSlug is recorded when a lead carries no course_slug
	DefaultCourseSlug = "unknown"

	// DefaultFailedLeadEvent is recorded when a failed lead carries no reason tag
	DefaultFailedLeadEvent = "unknown"

	// FreeLessonLeadSource marks where free-lesson leads originate
	FreeLessonLeadSource = "free_lesson_popup"
)

// Presence cache constants
const (
	// PresenceKeyPrefix prefixes the per-session liveness keys in redis
	PresenceKeyPrefix = "presence:"

	// DefaultPresenceTTL is how long a session counts as "live" after its last call
	DefaultPresenceTTL = 5 * time.Minute
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
