package businessflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ilmi-school/landing-analytics/app/dto"
	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/repository"
	"github.com/ilmi-school/landing-analytics/utils"
)

// LeadFlow stores completed and abandoned lead-capture submissions.
//
// Both calls resolve a session only when the payload carries a session_id,
// never counting the call as a visit, and insert the lead regardless: the
// session link is weak and stays null when no session resolves.
type LeadFlow interface {
	SubmitFreeLessonLead(ctx context.Context, req *dto.FreeLessonLeadRequest, metadata *ClientMetadata) (*dto.FreeLessonLeadResponse, error)
	SubmitFailedLead(ctx context.Context, req *dto.FailedLeadRequest, metadata *ClientMetadata) error
}

type LeadFlowImpl struct {
	sessionFlow    SessionFlow
	freeLessonRepo repository.FreeLessonLeadRepository
	failedLeadRepo repository.FailedLeadRepository
}

func NewLeadFlow(
	sessionFlow SessionFlow,
	freeLessonRepo repository.FreeLessonLeadRepository,
	failedLeadRepo repository.FailedLeadRepository,
) LeadFlow {
	return &LeadFlowImpl{
		sessionFlow:    sessionFlow,
		freeLessonRepo: freeLessonRepo,
		failedLeadRepo: failedLeadRepo,
	}
}

func (f *LeadFlowImpl) SubmitFreeLessonLead(ctx context.Context, req *dto.FreeLessonLeadRequest, metadata *ClientMetadata) (*dto.FreeLessonLeadResponse, error) {
	session, err := f.resolveOptional(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	lead := &models.FreeLessonLead{
		ID:            uuid.New(),
		SessionID:     sessionIDOrNil(session),
		CourseSlug:    courseSlugOrDefault(req.CourseSlug),
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         strings.TrimSpace(req.Phone),
		Source:        utils.FreeLessonLeadSource,
		IsValidNumber: req.IsValidNumber == nil || *req.IsValidNumber,
		CreatedAt:     utils.UTCNow(),
	}
	if err := f.freeLessonRepo.Save(ctx, lead); err != nil {
		return nil, NewBusinessError("LEAD_SAVE_FAILED", "Failed to save free lesson lead", err)
	}
	leadsCapturedTotal.WithLabelValues("free_lesson").Inc()

	return &dto.FreeLessonLeadResponse{ID: lead.ID.String()}, nil
}

func (f *LeadFlowImpl) SubmitFailedLead(ctx context.Context, req *dto.FailedLeadRequest, metadata *ClientMetadata) error {
	session, err := f.resolveOptional(ctx, req.SessionID)
	if err != nil {
		return err
	}

	lead := &models.FailedLead{
		ID:         uuid.New(),
		SessionID:  sessionIDOrNil(session),
		CourseSlug: courseSlugOrDefault(req.CourseSlug),
		FullName:   strings.TrimSpace(req.FullName),
		Phone:      strings.TrimSpace(req.Phone),
		Event:      failedEventOrDefault(req.Event),
		CreatedAt:  utils.UTCNow(),
	}
	if err := f.failedLeadRepo.Save(ctx, lead); err != nil {
		return NewBusinessError("LEAD_SAVE_FAILED", "Failed to save failed lead", err)
	}
	leadsCapturedTotal.WithLabelValues("failed").Inc()
	return nil
}

// resolveOptional touches the session only when a key is present; lead
// endpoints never count as visits.
func (f *LeadFlowImpl) resolveOptional(ctx context.Context, sessionKey string) (*models.VisitorSession, error) {
	if sessionKey == "" {
		return nil, nil
	}
	return f.sessionFlow.Resolve(ctx, sessionKey, false)
}

func courseSlugOrDefault(slug string) string {
	if slug == "" {
		return utils.DefaultCourseSlug
	}
	return slug
}

func failedEventOrDefault(event string) string {
	if event == "" {
		return utils.DefaultFailedLeadEvent
	}
	return event
}
