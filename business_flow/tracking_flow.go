package businessflow

import (
	"context"

	"github.com/ilmi-school/landing-analytics/app/dto"
	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/repository"
	"github.com/ilmi-school/landing-analytics/utils"
	"gorm.io/gorm"
)

// TrackingFlow records the four public tracking calls.
//
// register-session and page-view count as visits and skip all side effects
// when no session resolves. section-view and click events never bump the
// visit counter and are inserted even without a session, with a null link.
type TrackingFlow interface {
	RegisterSession(ctx context.Context, req *dto.RegisterSessionRequest, metadata *ClientMetadata) error
	RecordPageView(ctx context.Context, req *dto.PageViewRequest, metadata *ClientMetadata) error
	RecordSectionView(ctx context.Context, req *dto.SectionViewRequest, metadata *ClientMetadata) error
	RecordClickEvent(ctx context.Context, req *dto.ClickEventRequest, metadata *ClientMetadata) error
}

type TrackingFlowImpl struct {
	sessionFlow     SessionFlow
	sessionRepo     repository.VisitorSessionRepository
	pageViewRepo    repository.PageViewRepository
	sectionViewRepo repository.SectionViewRepository
	clickEventRepo  repository.ClickEventRepository
	db              *gorm.DB
}

func NewTrackingFlow(
	sessionFlow SessionFlow,
	sessionRepo repository.VisitorSessionRepository,
	pageViewRepo repository.PageViewRepository,
	sectionViewRepo repository.SectionViewRepository,
	clickEventRepo repository.ClickEventRepository,
	db *gorm.DB,
) TrackingFlow {
	return &TrackingFlowImpl{
		sessionFlow:     sessionFlow,
		sessionRepo:     sessionRepo,
		pageViewRepo:    pageViewRepo,
		sectionViewRepo: sectionViewRepo,
		clickEventRepo:  clickEventRepo,
		db:              db,
	}
}

// RegisterSession resolves the session as a counted visit and refreshes its
// attribution. Each sticky field keeps its stored value unless the payload
// carries a non-empty replacement; the IP address always comes from the
// request, never from the payload.
func (f *TrackingFlowImpl) RegisterSession(ctx context.Context, req *dto.RegisterSessionRequest, metadata *ClientMetadata) error {
	// Visit bump and attribution write commit together
	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		session, err := f.sessionFlow.Resolve(txCtx, req.SessionID, true)
		if err != nil {
			return err
		}
		if session == nil {
			return nil
		}

		session.UserAgent = pickNonEmpty(req.UserAgent, session.UserAgent)
		session.IPAddress = utils.ToPtr(metadata.IPAddress)
		session.UTMSource = pickNonEmpty(req.UTMSource, session.UTMSource)
		session.UTMMedium = pickNonEmpty(req.UTMMedium, session.UTMMedium)
		session.UTMCampaign = pickNonEmpty(req.UTMCampaign, session.UTMCampaign)
		session.UTMContent = pickNonEmpty(req.UTMContent, session.UTMContent)
		session.UTMTerm = pickNonEmpty(req.UTMTerm, session.UTMTerm)

		if err := f.sessionRepo.UpdateClientInfo(txCtx, session); err != nil {
			return NewBusinessError("SESSION_UPDATE_FAILED", "Failed to update session attribution", err)
		}
		return nil
	})
}

// RecordPageView resolves the session as a counted visit and stores the view.
// When no session resolves the insert is skipped entirely, matching the
// registration path. A payload user agent fills an empty stored one once but
// never overwrites it.
func (f *TrackingFlowImpl) RecordPageView(ctx context.Context, req *dto.PageViewRequest, metadata *ClientMetadata) error {
	// A counted visit must not commit without its page view row
	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		session, err := f.sessionFlow.Resolve(txCtx, req.SessionID, true)
		if err != nil {
			return err
		}
		if session == nil {
			return nil
		}

		if req.UserAgent != "" && session.UserAgent == "" {
			if err := f.sessionRepo.UpdateUserAgent(txCtx, session.ID, req.UserAgent); err != nil {
				return NewBusinessError("SESSION_UPDATE_FAILED", "Failed to fill session user agent", err)
			}
		}

		view := &models.PageView{
			SessionID: utils.ToPtr(session.ID),
			PagePath:  pagePathOrDefault(req.PagePath),
			CreatedAt: utils.UTCNow(),
		}
		if err := f.pageViewRepo.Save(txCtx, view); err != nil {
			return NewBusinessError("PAGE_VIEW_SAVE_FAILED", "Failed to record page view", err)
		}
		eventsRecordedTotal.WithLabelValues("page_view").Inc()
		return nil
	})
}

func (f *TrackingFlowImpl) RecordSectionView(ctx context.Context, req *dto.SectionViewRequest, metadata *ClientMetadata) error {
	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		session, err := f.sessionFlow.Resolve(txCtx, req.SessionID, false)
		if err != nil {
			return err
		}

		view := &models.SectionView{
			SessionID:    sessionIDOrNil(session),
			PagePath:     pagePathOrDefault(req.PagePath),
			SectionID:    req.SectionID,
			VisibleRatio: req.VisibleRatio,
			CreatedAt:    utils.UTCNow(),
		}
		if err := f.sectionViewRepo.Save(txCtx, view); err != nil {
			return NewBusinessError("SECTION_VIEW_SAVE_FAILED", "Failed to record section view", err)
		}
		eventsRecordedTotal.WithLabelValues("section_view").Inc()
		return nil
	})
}

func (f *TrackingFlowImpl) RecordClickEvent(ctx context.Context, req *dto.ClickEventRequest, metadata *ClientMetadata) error {
	return repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		session, err := f.sessionFlow.Resolve(txCtx, req.SessionID, false)
		if err != nil {
			return err
		}

		meta := req.Meta
		if meta == nil {
			meta = map[string]any{} // always an object, never null
		}

		event := &models.ClickEvent{
			SessionID: sessionIDOrNil(session),
			PagePath:  pagePathOrDefault(req.PagePath),
			EventID:   req.EventID,
			Meta:      meta,
			CreatedAt: utils.UTCNow(),
		}
		if err := f.clickEventRepo.Save(txCtx, event); err != nil {
			return NewBusinessError("CLICK_EVENT_SAVE_FAILED", "Failed to record click event", err)
		}
		eventsRecordedTotal.WithLabelValues("click").Inc()
		return nil
	})
}

func pagePathOrDefault(path string) string {
	if path == "" {
		return utils.DefaultPagePath
	}
	return path
}

func sessionIDOrNil(session *models.VisitorSession) *uint {
	if session == nil {
		return nil
	}
	return utils.ToPtr(session.ID)
}
