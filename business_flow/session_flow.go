package businessflow

import (
	"context"
	"log"

	"github.com/ilmi-school/landing-analytics/app/services"
	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/repository"
	"github.com/ilmi-school/landing-analytics/utils"
)

// SessionFlow resolves an opaque client-supplied session key to a
// VisitorSession, creating it if absent, and applies the visit-counting rule.
//
// An empty key resolves to nil with no error and no side effects; that is
// the contract for fire-and-forget clients, not a failure. Only session
// registration and page views count as visits and pass incrementVisit=true;
// section views, clicks, and lead submissions touch last_visit only.
type SessionFlow interface {
	Resolve(ctx context.Context, sessionKey string, incrementVisit bool) (*models.VisitorSession, error)
}

type SessionFlowImpl struct {
	repo     repository.VisitorSessionRepository
	presence services.PresenceService
}

func NewSessionFlow(repo repository.VisitorSessionRepository, presence services.PresenceService) SessionFlow {
	return &SessionFlowImpl{repo: repo, presence: presence}
}

func (f *SessionFlowImpl) Resolve(ctx context.Context, sessionKey string, incrementVisit bool) (*models.VisitorSession, error) {
	if sessionKey == "" {
		return nil, nil
	}

	session, created, err := f.repo.GetOrCreate(ctx, sessionKey)
	if err != nil {
		return nil, NewBusinessError("SESSION_RESOLVE_FAILED", "Failed to resolve visitor session", err)
	}

	if created {
		sessionsCreatedTotal.Inc()
	} else {
		// Existing session: last_visit on every touch, visit_count only
		// when the call counts as a visit.
		if err := f.repo.Touch(ctx, session.ID, incrementVisit); err != nil {
			return nil, NewBusinessError("SESSION_TOUCH_FAILED", "Failed to update visitor session", err)
		}
		session.LastVisit = utils.UTCNow()
		if incrementVisit {
			session.VisitCount++
		}
	}

	// Presence is best-effort; ingestion never fails on cache problems.
	if err := f.presence.MarkActive(ctx, sessionKey); err != nil {
		log.Printf("presence: failed to mark session active: %v", err)
	}

	return session, nil
}
