// Package tests contains integration tests for the data model constraints
package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/ilmi-school/landing-analytics/models"
	testingutil "github.com/ilmi-school/landing-analytics/testing"
	"github.com/ilmi-school/landing-analytics/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorSessionConstraints(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		t.Run("SessionKeyIsUnique", func(t *testing.T) {
			first := &models.VisitorSession{
				SessionKey: "model-key-1",
				FirstVisit: utils.UTCNow(),
				LastVisit:  utils.UTCNow(),
				VisitCount: 1,
			}
			require.NoError(t, testDB.DB.Create(first).Error)

			dup := &models.VisitorSession{
				SessionKey: "model-key-1",
				FirstVisit: utils.UTCNow(),
				LastVisit:  utils.UTCNow(),
				VisitCount: 1,
			}
			assert.Error(t, testDB.DB.Create(dup).Error)
		})

		t.Run("NullableIPAddress", func(t *testing.T) {
			session := &models.VisitorSession{
				SessionKey: "model-key-2",
				FirstVisit: utils.UTCNow(),
				LastVisit:  utils.UTCNow(),
				VisitCount: 1,
			}
			require.NoError(t, testDB.DB.Create(session).Error)

			var reloaded models.VisitorSession
			require.NoError(t, testDB.DB.Last(&reloaded, session.ID).Error)
			assert.Nil(t, reloaded.IPAddress)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestClickEventMetaStorage(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		t.Run("NilMetaStoredAsEmptyObject", func(t *testing.T) {
			event := &models.ClickEvent{
				EventID:   "appstore_click",
				PagePath:  "/",
				CreatedAt: utils.UTCNow(),
			}
			require.NoError(t, testDB.DB.Create(event).Error)

			var reloaded models.ClickEvent
			require.NoError(t, testDB.DB.Last(&reloaded, event.ID).Error)
			assert.NotNil(t, reloaded.Meta)
			assert.Empty(t, reloaded.Meta)
		})

		t.Run("NestedMetaSurvivesRoundTrip", func(t *testing.T) {
			event := &models.ClickEvent{
				EventID:  "buy_click",
				PagePath: "/pricing",
				Meta: models.ClickEventMeta{
					"plan":   "yearly",
					"coords": map[string]any{"x": float64(10), "y": float64(20)},
				},
				CreatedAt: utils.UTCNow(),
			}
			require.NoError(t, testDB.DB.Create(event).Error)

			var reloaded models.ClickEvent
			require.NoError(t, testDB.DB.Last(&reloaded, event.ID).Error)
			assert.Equal(t, "yearly", reloaded.Meta["plan"])
			coords, ok := reloaded.Meta["coords"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(10), coords["x"])
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLeadModels(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		t.Run("FreeLessonLeadDefaults", func(t *testing.T) {
			lead := &models.FreeLessonLead{
				ID:            uuid.New(),
				CourseSlug:    "python101",
				FullName:      "G",
				Phone:         "+998904444444",
				Source:        utils.FreeLessonLeadSource,
				IsValidNumber: true,
				CreatedAt:     utils.UTCNow(),
			}
			require.NoError(t, testDB.DB.Create(lead).Error)

			var reloaded models.FreeLessonLead
			require.NoError(t, testDB.DB.Where("id = ?", lead.ID).Last(&reloaded).Error)
			assert.Equal(t, utils.FreeLessonLeadSource, reloaded.Source)
			assert.True(t, reloaded.IsValidNumber)
			assert.Nil(t, reloaded.SessionID)
		})

		t.Run("FailedLeadKeepsEventTag", func(t *testing.T) {
			lead := &models.FailedLead{
				ID:         uuid.New(),
				CourseSlug: "python101",
				FullName:   "H",
				Event:      "abandoned",
				CreatedAt:  utils.UTCNow(),
			}
			require.NoError(t, testDB.DB.Create(lead).Error)

			var reloaded models.FailedLead
			require.NoError(t, testDB.DB.Where("id = ?", lead.ID).Last(&reloaded).Error)
			assert.Equal(t, "abandoned", reloaded.Event)
		})

		return nil
	})
	require.NoError(t, err)
}
