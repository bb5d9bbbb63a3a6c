package dto

// FreeLessonLeadRequest is the payload of POST /api/leads/free-lesson/.
// IsValidNumber defaults to true when omitted.
type FreeLessonLeadRequest struct {
	SessionID     string `json:"session_id"`
	CourseSlug    string `json:"course_slug"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	IsValidNumber *bool  `json:"is_valid_number"`
}

// FreeLessonLeadResponse carries the server-generated lead identifier.
type FreeLessonLeadResponse struct {
	ID string `json:"id"`
}

// FailedLeadRequest is the payload of POST /api/leads/failed/.
type FailedLeadRequest struct {
	SessionID  string `json:"session_id"`
	CourseSlug string `json:"course_slug"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Event      string `json:"event"`
}

// AdminLeadExportRequest is the query of GET /api/admin/leads/export.
type AdminLeadExportRequest struct {
	Kind string `json:"kind" validate:"required,oneof=free-lesson failed"`
}
