// Package testing provides test utilities and database setup for testing the analytics service
package testing

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/repository"
	"github.com/ilmi-school/landing-analytics/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// RandomSessionKey generates a client-style session key
func RandomSessionKey() string {
	return fmt.Sprintf("sess-%d-%06d", rand.Intn(900000)+100000, rand.Intn(1000000))
}

// CreateTestSession creates a visitor session with attribution defaults
func (tf *TestFixtures) CreateTestSession(sessionKey string) (*models.VisitorSession, error) {
	if sessionKey == "" {
		sessionKey = RandomSessionKey()
	}

	session := &models.VisitorSession{
		SessionKey: sessionKey,
		FirstVisit: utils.UTCNow(),
		LastVisit:  utils.UTCNow(),
		VisitCount: 1,
		UserAgent:  "Mozilla/5.0 (test)",
		IPAddress:  utils.ToPtr("203.0.113.10"),
		UTMSource:  "google",
		UTMMedium:  "cpc",
	}

	if err := tf.DB.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create test session: %w", err)
	}
	return session, nil
}

// CreateTestPageView creates a page view linked to the given session
func (tf *TestFixtures) CreateTestPageView(sessionID *uint, pagePath string) (*models.PageView, error) {
	if pagePath == "" {
		pagePath = "/"
	}

	pv := &models.PageView{
		SessionID: sessionID,
		PagePath:  pagePath,
		CreatedAt: utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(pv).Error; err != nil {
		return nil, fmt.Errorf("failed to create test page view: %w", err)
	}
	return pv, nil
}

// CreateTestPageViews inserts one page view per path in a single batch
func (tf *TestFixtures) CreateTestPageViews(sessionID *uint, pagePaths ...string) ([]*models.PageView, error) {
	rows := make([]*models.PageView, 0, len(pagePaths))
	for _, pagePath := range pagePaths {
		rows = append(rows, &models.PageView{
			SessionID: sessionID,
			PagePath:  pagePath,
			CreatedAt: utils.UTCNow(),
		})
	}

	repo := repository.NewPageViewRepository(tf.DB.DB)
	if err := repo.SaveBatch(context.Background(), rows); err != nil {
		return nil, fmt.Errorf("failed to create test page views: %w", err)
	}
	return rows, nil
}

// CreateTestSectionView creates a section view record
func (tf *TestFixtures) CreateTestSectionView(sessionID *uint, sectionID string) (*models.SectionView, error) {
	sv := &models.SectionView{
		SessionID:    sessionID,
		SectionID:    sectionID,
		PagePath:     "/",
		VisibleRatio: utils.ToPtr(0.75),
		CreatedAt:    utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(sv).Error; err != nil {
		return nil, fmt.Errorf("failed to create test section view: %w", err)
	}
	return sv, nil
}

// CreateTestClickEvent creates a click event record
func (tf *TestFixtures) CreateTestClickEvent(sessionID *uint, eventID string) (*models.ClickEvent, error) {
	ce := &models.ClickEvent{
		SessionID: sessionID,
		EventID:   eventID,
		PagePath:  "/",
		Meta:      map[string]any{"button": "cta"},
		CreatedAt: utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(ce).Error; err != nil {
		return nil, fmt.Errorf("failed to create test click event: %w", err)
	}
	return ce, nil
}

// CreateTestFreeLessonLead creates a free lesson lead record
func (tf *TestFixtures) CreateTestFreeLessonLead(sessionID *uint) (*models.FreeLessonLead, error) {
	lead := &models.FreeLessonLead{
		ID:            uuid.New(),
		SessionID:     sessionID,
		CourseSlug:    "python101",
		FullName:      "Jane Doe",
		Phone:         fmt.Sprintf("+9891%08d", rand.Intn(100000000)),
		Source:        utils.FreeLessonLeadSource,
		IsValidNumber: true,
		CreatedAt:     utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create test free lesson lead: %w", err)
	}
	return lead, nil
}

// CreateTestFailedLead creates a failed lead record
func (tf *TestFixtures) CreateTestFailedLead(sessionID *uint) (*models.FailedLead, error) {
	lead := &models.FailedLead{
		ID:         uuid.New(),
		SessionID:  sessionID,
		CourseSlug: "python101",
		FullName:   "Jane Doe",
		Phone:      fmt.Sprintf("+9891%08d", rand.Intn(100000000)),
		Event:      "abandoned",
		CreatedAt:  utils.UTCNow(),
	}

	if err := tf.DB.DB.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create test failed lead: %w", err)
	}
	return lead, nil
}
