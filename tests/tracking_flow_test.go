// Package tests contains integration tests for the tracking flow
package tests

import (
	"context"
	"testing"

	"github.com/ilmi-school/landing-analytics/app/dto"
	"github.com/ilmi-school/landing-analytics/app/services"
	businessflow "github.com/ilmi-school/landing-analytics/business_flow"
	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/repository"
	testingutil "github.com/ilmi-school/landing-analytics/testing"
	"github.com/ilmi-school/landing-analytics/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackingFlow(testDB *testingutil.TestDB) (businessflow.TrackingFlow, repository.VisitorSessionRepository) {
	sessionRepo := repository.NewVisitorSessionRepository(testDB.DB)
	sessionFlow := businessflow.NewSessionFlow(sessionRepo, services.NewNoopPresenceService())
	flow := businessflow.NewTrackingFlow(
		sessionFlow,
		sessionRepo,
		repository.NewPageViewRepository(testDB.DB),
		repository.NewSectionViewRepository(testDB.DB),
		repository.NewClickEventRepository(testDB.DB),
		testDB.DB,
	)
	return flow, sessionRepo
}

func TestRegisterSession(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow, sessionRepo := newTrackingFlow(testDB)
		ctx := context.Background()
		metadata := businessflow.NewClientMetadata("203.0.113.50", "Mozilla/5.0")

		t.Run("MissingSessionIDIsSilentNoOp", func(t *testing.T) {
			err := flow.RegisterSession(ctx, &dto.RegisterSessionRequest{UTMSource: "fb"}, metadata)
			require.NoError(t, err)

			count, err := sessionRepo.Count(ctx, models.VisitorSessionFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})

		t.Run("CreatesSessionAndStoresAttribution", func(t *testing.T) {
			err := flow.RegisterSession(ctx, &dto.RegisterSessionRequest{
				SessionID: "track-reg-1",
				UserAgent: "Custom-UA",
				UTMSource: "fb",
				UTMMedium: "social",
			}, metadata)
			require.NoError(t, err)

			session, err := sessionRepo.BySessionKey(ctx, "track-reg-1")
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, "Custom-UA", session.UserAgent)
			assert.Equal(t, "fb", session.UTMSource)
			assert.Equal(t, "social", session.UTMMedium)
			require.NotNil(t, session.IPAddress)
			assert.Equal(t, "203.0.113.50", *session.IPAddress)
		})

		t.Run("EmptyFieldsKeepStoredValues", func(t *testing.T) {
			require.NoError(t, flow.RegisterSession(ctx, &dto.RegisterSessionRequest{
				SessionID: "track-reg-2",
				UTMSource: "google",
				UTMTerm:   "quran",
			}, metadata))

			// Second registration with empty UTM fields must not clear them
			require.NoError(t, flow.RegisterSession(ctx, &dto.RegisterSessionRequest{
				SessionID: "track-reg-2",
			}, metadata))

			session, err := sessionRepo.BySessionKey(ctx, "track-reg-2")
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, "google", session.UTMSource)
			assert.Equal(t, "quran", session.UTMTerm)
			assert.Equal(t, uint(2), session.VisitCount)
		})

		t.Run("NonEmptyFieldsReplaceStoredValues", func(t *testing.T) {
			require.NoError(t, flow.RegisterSession(ctx, &dto.RegisterSessionRequest{
				SessionID: "track-reg-3",
				UTMSource: "google",
			}, metadata))
			require.NoError(t, flow.RegisterSession(ctx, &dto.RegisterSessionRequest{
				SessionID: "track-reg-3",
				UTMSource: "telegram",
			}, metadata))

			session, err := sessionRepo.BySessionKey(ctx, "track-reg-3")
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, "telegram", session.UTMSource)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestRecordPageView(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow, sessionRepo := newTrackingFlow(testDB)
		pageViewRepo := repository.NewPageViewRepository(testDB.DB)
		ctx := context.Background()
		metadata := businessflow.NewClientMetadata("203.0.113.51", "Mozilla/5.0")

		t.Run("MissingSessionIDSkipsInsert", func(t *testing.T) {
			require.NoError(t, flow.RecordPageView(ctx, &dto.PageViewRequest{PagePath: "/pricing"}, metadata))

			count, err := pageViewRepo.Count(ctx, models.PageViewFilter{})
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})

		t.Run("InsertsViewAndCountsVisit", func(t *testing.T) {
			require.NoError(t, flow.RecordPageView(ctx, &dto.PageViewRequest{
				SessionID: "track-pv-1",
				PagePath:  "/pricing",
			}, metadata))

			session, err := sessionRepo.BySessionKey(ctx, "track-pv-1")
			require.NoError(t, err)
			require.NotNil(t, session)

			views, err := pageViewRepo.ByFilter(ctx, models.PageViewFilter{SessionID: utils.ToPtr(session.ID)}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Equal(t, "/pricing", views[0].PagePath)
		})

		t.Run("MissingPagePathDefaultsToRoot", func(t *testing.T) {
			require.NoError(t, flow.RecordPageView(ctx, &dto.PageViewRequest{SessionID: "track-pv-2"}, metadata))

			session, err := sessionRepo.BySessionKey(ctx, "track-pv-2")
			require.NoError(t, err)
			views, err := pageViewRepo.ByFilter(ctx, models.PageViewFilter{SessionID: utils.ToPtr(session.ID)}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Equal(t, "/", views[0].PagePath)
		})

		t.Run("UserAgentFillsEmptyStoredValueOnce", func(t *testing.T) {
			require.NoError(t, flow.RecordPageView(ctx, &dto.PageViewRequest{
				SessionID: "track-pv-3",
				UserAgent: "First-UA",
			}, metadata))
			require.NoError(t, flow.RecordPageView(ctx, &dto.PageViewRequest{
				SessionID: "track-pv-3",
				UserAgent: "Second-UA",
			}, metadata))

			session, err := sessionRepo.BySessionKey(ctx, "track-pv-3")
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, "First-UA", session.UserAgent)
		})

		t.Run("RegisterThenPageViewScenario", func(t *testing.T) {
			require.NoError(t, flow.RegisterSession(ctx, &dto.RegisterSessionRequest{
				SessionID: "track-pv-4",
				UTMSource: "fb",
			}, metadata))
			require.NoError(t, flow.RecordPageView(ctx, &dto.PageViewRequest{
				SessionID: "track-pv-4",
				PagePath:  "/pricing",
			}, metadata))

			session, err := sessionRepo.BySessionKey(ctx, "track-pv-4")
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, uint(2), session.VisitCount)
			assert.Equal(t, "fb", session.UTMSource)

			views, err := pageViewRepo.ByFilter(ctx, models.PageViewFilter{SessionID: utils.ToPtr(session.ID)}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Equal(t, "/pricing", views[0].PagePath)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestRecordSectionViewAndClickEvent(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow, sessionRepo := newTrackingFlow(testDB)
		sectionViewRepo := repository.NewSectionViewRepository(testDB.DB)
		clickEventRepo := repository.NewClickEventRepository(testDB.DB)
		ctx := context.Background()
		metadata := businessflow.NewClientMetadata("203.0.113.52", "Mozilla/5.0")

		t.Run("SectionViewWithoutSessionInsertsWithNullLink", func(t *testing.T) {
			require.NoError(t, flow.RecordSectionView(ctx, &dto.SectionViewRequest{
				SectionID:    "faq",
				VisibleRatio: utils.ToPtr(0.4),
			}, metadata))

			rows, err := sectionViewRepo.ByFilter(ctx, models.SectionViewFilter{SectionID: utils.ToPtr("faq")}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Nil(t, rows[0].SessionID)
			require.NotNil(t, rows[0].VisibleRatio)
			assert.InDelta(t, 0.4, *rows[0].VisibleRatio, 1e-9)
		})

		t.Run("SectionViewCreatesSessionWithoutCountingVisit", func(t *testing.T) {
			require.NoError(t, flow.RecordSectionView(ctx, &dto.SectionViewRequest{
				SessionID: "track-sv-1",
				SectionID: "hero",
			}, metadata))

			session, err := sessionRepo.BySessionKey(ctx, "track-sv-1")
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.Equal(t, uint(1), session.VisitCount)

			rows, err := sectionViewRepo.ByFilter(ctx, models.SectionViewFilter{SessionID: utils.ToPtr(session.ID)}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
		})

		t.Run("OmittedVisibleRatioStaysNull", func(t *testing.T) {
			require.NoError(t, flow.RecordSectionView(ctx, &dto.SectionViewRequest{
				SessionID: "track-sv-2",
				SectionID: "curriculum",
			}, metadata))

			rows, err := sectionViewRepo.ByFilter(ctx, models.SectionViewFilter{SectionID: utils.ToPtr("curriculum")}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Nil(t, rows[0].VisibleRatio)
		})

		t.Run("ClickEventDefaultsMetaToEmptyObject", func(t *testing.T) {
			require.NoError(t, flow.RecordClickEvent(ctx, &dto.ClickEventRequest{
				SessionID: "track-ce-1",
				EventID:   "free_lesson_click",
			}, metadata))

			rows, err := clickEventRepo.ByFilter(ctx, models.ClickEventFilter{EventID: utils.ToPtr("free_lesson_click")}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.NotNil(t, rows[0].Meta)
			assert.Empty(t, rows[0].Meta)
		})

		t.Run("ClickEventStoresMetaPayload", func(t *testing.T) {
			require.NoError(t, flow.RecordClickEvent(ctx, &dto.ClickEventRequest{
				SessionID: "track-ce-2",
				EventID:   "trailer_play",
				Meta:      map[string]any{"position": "header"},
			}, metadata))

			rows, err := clickEventRepo.ByFilter(ctx, models.ClickEventFilter{EventID: utils.ToPtr("trailer_play")}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "header", rows[0].Meta["position"])
		})

		return nil
	})
	require.NoError(t, err)
}
