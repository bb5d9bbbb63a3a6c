package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisitorSessionRepositoryImpl implements VisitorSessionRepository
type VisitorSessionRepositoryImpl struct {
	*BaseRepository[models.VisitorSession, models.VisitorSessionFilter]
}

func NewVisitorSessionRepository(db *gorm.DB) VisitorSessionRepository {
	return &VisitorSessionRepositoryImpl{BaseRepository: NewBaseRepository[models.VisitorSession, models.VisitorSessionFilter](db)}
}

func (r *VisitorSessionRepositoryImpl) ByID(ctx context.Context, id uint) (*models.VisitorSession, error) {
	db := r.getDB(ctx)
	var row models.VisitorSession
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *VisitorSessionRepositoryImpl) BySessionKey(ctx context.Context, sessionKey string) (*models.VisitorSession, error) {
	filter := models.VisitorSessionFilter{SessionKey: &sessionKey}
	rows, err := r.ByFilter(ctx, filter, "id DESC", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// GetOrCreate inserts a session row for sessionKey unless one exists already.
// The insert rides on the unique constraint: ON CONFLICT (session_key) DO
// NOTHING, so two concurrent calls for the same unknown key produce exactly
// one row and the loser re-fetches the winner's.
func (r *VisitorSessionRepositoryImpl) GetOrCreate(ctx context.Context, sessionKey string) (*models.VisitorSession, bool, error) {
	db := r.getDB(ctx)

	now := utils.UTCNow()
	row := models.VisitorSession{
		SessionKey: sessionKey,
		FirstVisit: now,
		LastVisit:  now,
		VisitCount: 1,
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return nil, false, fmt.Errorf("failed to upsert visitor session: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return &row, true, nil
	}

	// Lost the creation race or the row predates this call; fetch it.
	existing, err := r.BySessionKey(ctx, sessionKey)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("visitor session %q missing after conflict", sessionKey)
	}
	return existing, false, nil
}

// Touch updates last_visit, and visit_count when the call counts as a visit.
// Only those columns are written; concurrent touches of the same row are
// resolved by the database, lost increments in a narrow race are tolerated.
func (r *VisitorSessionRepositoryImpl) Touch(ctx context.Context, sessionID uint, incrementVisit bool) error {
	db := r.getDB(ctx)

	updates := map[string]any{
		"last_visit": utils.UTCNow(),
	}
	if incrementVisit {
		updates["visit_count"] = gorm.Expr("visit_count + 1")
	}

	if err := db.Model(&models.VisitorSession{}).Where("id = ?", sessionID).UpdateColumns(updates).Error; err != nil {
		return fmt.Errorf("failed to touch visitor session %d: %w", sessionID, err)
	}
	return nil
}

// UpdateClientInfo persists the attribution columns of an already-resolved
// session. Sticky semantics are applied by the caller; this writes what it gets.
func (r *VisitorSessionRepositoryImpl) UpdateClientInfo(ctx context.Context, session *models.VisitorSession) error {
	db := r.getDB(ctx)

	updates := map[string]any{
		"user_agent":   session.UserAgent,
		"ip_address":   session.IPAddress,
		"utm_source":   session.UTMSource,
		"utm_medium":   session.UTMMedium,
		"utm_campaign": session.UTMCampaign,
		"utm_content":  session.UTMContent,
		"utm_term":     session.UTMTerm,
	}

	if err := db.Model(&models.VisitorSession{}).Where("id = ?", session.ID).UpdateColumns(updates).Error; err != nil {
		return fmt.Errorf("failed to update client info for session %d: %w", session.ID, err)
	}
	return nil
}

func (r *VisitorSessionRepositoryImpl) UpdateUserAgent(ctx context.Context, sessionID uint, userAgent string) error {
	db := r.getDB(ctx)
	if err := db.Model(&models.VisitorSession{}).Where("id = ?", sessionID).UpdateColumn("user_agent", userAgent).Error; err != nil {
		return fmt.Errorf("failed to update user agent for session %d: %w", sessionID, err)
	}
	return nil
}

func (r *VisitorSessionRepositoryImpl) applyFilter(db *gorm.DB, f models.VisitorSessionFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.SessionKey != nil {
		db = db.Where("session_key = ?", *f.SessionKey)
	}
	if f.UTMSource != nil {
		db = db.Where("utm_source = ?", *f.UTMSource)
	}
	if f.UTMMedium != nil {
		db = db.Where("utm_medium = ?", *f.UTMMedium)
	}
	if f.UTMCampaign != nil {
		db = db.Where("utm_campaign = ?", *f.UTMCampaign)
	}
	if f.LastVisitFrom != nil {
		db = db.Where("last_visit >= ?", *f.LastVisitFrom)
	}
	if f.LastVisitTo != nil {
		db = db.Where("last_visit < ?", *f.LastVisitTo)
	}
	return db
}

func (r *VisitorSessionRepositoryImpl) ByFilter(ctx context.Context, filter models.VisitorSessionFilter, orderBy string, limit, offset int) ([]*models.VisitorSession, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.VisitorSession{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.VisitorSession
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *VisitorSessionRepositoryImpl) Count(ctx context.Context, filter models.VisitorSessionFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.VisitorSession{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *VisitorSessionRepositoryImpl) Exists(ctx context.Context, filter models.VisitorSessionFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
