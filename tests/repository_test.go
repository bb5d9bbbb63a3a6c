// Package tests contains integration tests for the repository layer
package tests

import (
	"context"
	"sync"
	"testing"

	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/repository"
	testingutil "github.com/ilmi-school/landing-analytics/testing"
	"github.com/ilmi-school/landing-analytics/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorSessionRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewVisitorSessionRepository(testDB.DB)
		ctx := context.Background()

		t.Run("GetOrCreateInsertsNewSession", func(t *testing.T) {
			session, created, err := repo.GetOrCreate(ctx, "repo-key-1")
			require.NoError(t, err)
			require.NotNil(t, session)
			assert.True(t, created)
			assert.Equal(t, "repo-key-1", session.SessionKey)
			assert.Equal(t, uint(1), session.VisitCount)
			assert.NotZero(t, session.ID)
		})

		t.Run("GetOrCreateReturnsExistingSession", func(t *testing.T) {
			first, created, err := repo.GetOrCreate(ctx, "repo-key-2")
			require.NoError(t, err)
			require.True(t, created)

			second, created, err := repo.GetOrCreate(ctx, "repo-key-2")
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, first.ID, second.ID)

			count, err := repo.Count(ctx, models.VisitorSessionFilter{SessionKey: utils.ToPtr("repo-key-2")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ConcurrentGetOrCreateProducesOneRow", func(t *testing.T) {
			const workers = 8
			var wg sync.WaitGroup
			errs := make(chan error, workers)

			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _, err := repo.GetOrCreate(ctx, "repo-key-race")
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				require.NoError(t, err)
			}

			count, err := repo.Count(ctx, models.VisitorSessionFilter{SessionKey: utils.ToPtr("repo-key-race")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("TouchUpdatesLastVisitOnly", func(t *testing.T) {
			session, _, err := repo.GetOrCreate(ctx, "repo-key-touch")
			require.NoError(t, err)

			stored, err := repo.BySessionKey(ctx, "repo-key-touch")
			require.NoError(t, err)
			require.NotNil(t, stored)

			require.NoError(t, repo.Touch(ctx, session.ID, false))

			reloaded, err := repo.BySessionKey(ctx, "repo-key-touch")
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, uint(1), reloaded.VisitCount)
			assert.False(t, reloaded.LastVisit.Before(stored.LastVisit))
			assert.True(t, reloaded.FirstVisit.Equal(stored.FirstVisit))
		})

		t.Run("TouchNeverRewritesFirstVisit", func(t *testing.T) {
			session, _, err := repo.GetOrCreate(ctx, "repo-key-first")
			require.NoError(t, err)

			stored, err := repo.BySessionKey(ctx, "repo-key-first")
			require.NoError(t, err)
			require.NotNil(t, stored)

			require.NoError(t, repo.Touch(ctx, session.ID, true))
			require.NoError(t, repo.Touch(ctx, session.ID, true))
			require.NoError(t, repo.Touch(ctx, session.ID, false))

			reloaded, err := repo.BySessionKey(ctx, "repo-key-first")
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, uint(3), reloaded.VisitCount)
			assert.True(t, reloaded.FirstVisit.Equal(stored.FirstVisit))
		})

		t.Run("TouchIncrementsVisitCount", func(t *testing.T) {
			session, _, err := repo.GetOrCreate(ctx, "repo-key-count")
			require.NoError(t, err)

			require.NoError(t, repo.Touch(ctx, session.ID, true))
			require.NoError(t, repo.Touch(ctx, session.ID, true))

			reloaded, err := repo.BySessionKey(ctx, "repo-key-count")
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, uint(3), reloaded.VisitCount)
		})

		t.Run("UpdateClientInfoPersistsAttribution", func(t *testing.T) {
			session, _, err := repo.GetOrCreate(ctx, "repo-key-attrib")
			require.NoError(t, err)

			session.UserAgent = "Mozilla/5.0"
			session.IPAddress = utils.ToPtr("198.51.100.7")
			session.UTMSource = "google"
			session.UTMCampaign = "spring"
			require.NoError(t, repo.UpdateClientInfo(ctx, session))

			reloaded, err := repo.BySessionKey(ctx, "repo-key-attrib")
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, "Mozilla/5.0", reloaded.UserAgent)
			require.NotNil(t, reloaded.IPAddress)
			assert.Equal(t, "198.51.100.7", *reloaded.IPAddress)
			assert.Equal(t, "google", reloaded.UTMSource)
			assert.Equal(t, "spring", reloaded.UTMCampaign)
		})

		t.Run("BySessionKeyReturnsNilForUnknownKey", func(t *testing.T) {
			session, err := repo.BySessionKey(ctx, "no-such-key")
			require.NoError(t, err)
			assert.Nil(t, session)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestEventRepositories(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := context.Background()

		pageViewRepo := repository.NewPageViewRepository(testDB.DB)
		sectionViewRepo := repository.NewSectionViewRepository(testDB.DB)
		clickEventRepo := repository.NewClickEventRepository(testDB.DB)

		session, err := fixtures.CreateTestSession("")
		require.NoError(t, err)

		t.Run("PageViewByFilter", func(t *testing.T) {
			_, err := fixtures.CreateTestPageView(utils.ToPtr(session.ID), "/pricing")
			require.NoError(t, err)
			_, err = fixtures.CreateTestPageView(utils.ToPtr(session.ID), "/")
			require.NoError(t, err)

			rows, err := pageViewRepo.ByFilter(ctx, models.PageViewFilter{
				SessionID: utils.ToPtr(session.ID),
				PagePath:  utils.ToPtr("/pricing"),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "/pricing", rows[0].PagePath)
		})

		t.Run("PageViewSaveBatchInsertsAllRows", func(t *testing.T) {
			batched, err := fixtures.CreateTestPageViews(utils.ToPtr(session.ID), "/a", "/b", "/c")
			require.NoError(t, err)
			require.Len(t, batched, 3)

			for _, pv := range batched {
				assert.NotZero(t, pv.ID)
			}

			count, err := pageViewRepo.Count(ctx, models.PageViewFilter{SessionID: utils.ToPtr(session.ID)})
			require.NoError(t, err)
			assert.Equal(t, int64(5), count)
		})

		t.Run("SectionViewWithNullSession", func(t *testing.T) {
			view, err := fixtures.CreateTestSectionView(nil, "testimonials")
			require.NoError(t, err)
			assert.Nil(t, view.SessionID)

			rows, err := sectionViewRepo.ByFilter(ctx, models.SectionViewFilter{
				SectionID: utils.ToPtr("testimonials"),
			}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Nil(t, rows[0].SessionID)
		})

		t.Run("ClickEventMetaRoundTrip", func(t *testing.T) {
			event, err := fixtures.CreateTestClickEvent(utils.ToPtr(session.ID), "buy_click")
			require.NoError(t, err)

			reloaded, err := clickEventRepo.ByID(ctx, event.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, "buy_click", reloaded.EventID)
			assert.Equal(t, "cta", reloaded.Meta["button"])
		})

		t.Run("CascadeDeleteRemovesEvents", func(t *testing.T) {
			doomed, err := fixtures.CreateTestSession("")
			require.NoError(t, err)
			_, err = fixtures.CreateTestPageView(utils.ToPtr(doomed.ID), "/doomed")
			require.NoError(t, err)

			require.NoError(t, testDB.DB.Delete(&models.VisitorSession{}, doomed.ID).Error)

			count, err := pageViewRepo.Count(ctx, models.PageViewFilter{SessionID: utils.ToPtr(doomed.ID)})
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLeadRepositories(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := context.Background()

		freeLessonRepo := repository.NewFreeLessonLeadRepository(testDB.DB)
		failedLeadRepo := repository.NewFailedLeadRepository(testDB.DB)

		t.Run("ByLeadIDFindsStoredLead", func(t *testing.T) {
			lead, err := fixtures.CreateTestFreeLessonLead(nil)
			require.NoError(t, err)

			reloaded, err := freeLessonRepo.ByLeadID(ctx, lead.ID.String())
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.Equal(t, lead.Phone, reloaded.Phone)
			assert.True(t, reloaded.IsValidNumber)
		})

		t.Run("ByLeadIDRejectsMalformedID", func(t *testing.T) {
			_, err := freeLessonRepo.ByLeadID(ctx, "not-a-uuid")
			assert.Error(t, err)
		})

		t.Run("SessionDeleteClearsLeadLink", func(t *testing.T) {
			session, err := fixtures.CreateTestSession("")
			require.NoError(t, err)
			lead, err := fixtures.CreateTestFailedLead(utils.ToPtr(session.ID))
			require.NoError(t, err)

			require.NoError(t, testDB.DB.Delete(&models.VisitorSession{}, session.ID).Error)

			var reloaded models.FailedLead
			require.NoError(t, testDB.DB.Where("id = ?", lead.ID).Last(&reloaded).Error)
			assert.Nil(t, reloaded.SessionID)
		})

		t.Run("CountByEvent", func(t *testing.T) {
			_, err := fixtures.CreateTestFailedLead(nil)
			require.NoError(t, err)

			count, err := failedLeadRepo.Count(ctx, models.FailedLeadFilter{Event: utils.ToPtr("abandoned")})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, count, int64(1))
		})

		return nil
	})
	require.NoError(t, err)
}
