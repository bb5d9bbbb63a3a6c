// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/ilmi-school/landing-analytics/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// VisitorSessionRepository defines operations for visitor sessions
type VisitorSessionRepository interface {
	Repository[models.VisitorSession, models.VisitorSessionFilter]
	BySessionKey(ctx context.Context, sessionKey string) (*models.VisitorSession, error)
	// GetOrCreate resolves sessionKey to a row, inserting one atomically when
	// absent. The returned bool reports whether this call created the row.
	// Concurrent calls for the same unknown key must never produce two rows;
	// the loser of the race falls back to fetching the winner's row.
	GetOrCreate(ctx context.Context, sessionKey string) (*models.VisitorSession, bool, error)
	// Touch persists last_visit and, when incrementVisit is set, visit_count+1.
	Touch(ctx context.Context, sessionID uint, incrementVisit bool) error
	// UpdateClientInfo persists user_agent, ip_address, and the five UTM
	// columns of an already-resolved session.
	UpdateClientInfo(ctx context.Context, session *models.VisitorSession) error
	// UpdateUserAgent persists user_agent only (one-time fill on page views).
	UpdateUserAgent(ctx context.Context, sessionID uint, userAgent string) error
}

// PageViewRepository defines operations for page view events
type PageViewRepository interface {
	Repository[models.PageView, models.PageViewFilter]
}

// SectionViewRepository defines operations for section view events
type SectionViewRepository interface {
	Repository[models.SectionView, models.SectionViewFilter]
}

// ClickEventRepository defines operations for click events
type ClickEventRepository interface {
	Repository[models.ClickEvent, models.ClickEventFilter]
}

// FreeLessonLeadRepository defines operations for free-lesson leads
type FreeLessonLeadRepository interface {
	Repository[models.FreeLessonLead, models.FreeLessonLeadFilter]
	ByLeadID(ctx context.Context, id string) (*models.FreeLessonLead, error)
}

// FailedLeadRepository defines operations for failed leads
type FailedLeadRepository interface {
	Repository[models.FailedLead, models.FailedLeadFilter]
}
