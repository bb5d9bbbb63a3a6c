package repository

import (
	"context"
	"errors"

	"github.com/ilmi-school/landing-analytics/models"
	"gorm.io/gorm"
)

// FailedLeadRepositoryImpl implements FailedLeadRepository
type FailedLeadRepositoryImpl struct {
	*BaseRepository[models.FailedLead, models.FailedLeadFilter]
}

func NewFailedLeadRepository(db *gorm.DB) FailedLeadRepository {
	return &FailedLeadRepositoryImpl{BaseRepository: NewBaseRepository[models.FailedLead, models.FailedLeadFilter](db)}
}

// ByID is unused for leads (uuid primary key); kept for interface parity.
func (r *FailedLeadRepositoryImpl) ByID(ctx context.Context, id uint) (*models.FailedLead, error) {
	return nil, errors.New("failed leads are keyed by uuid")
}

func (r *FailedLeadRepositoryImpl) applyFilter(db *gorm.DB, f models.FailedLeadFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.SessionID != nil {
		db = db.Where("session_id = ?", *f.SessionID)
	}
	if f.CourseSlug != nil {
		db = db.Where("course_slug = ?", *f.CourseSlug)
	}
	if f.Event != nil {
		db = db.Where("event = ?", *f.Event)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *FailedLeadRepositoryImpl) ByFilter(ctx context.Context, filter models.FailedLeadFilter, orderBy string, limit, offset int) ([]*models.FailedLead, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.FailedLead{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.FailedLead
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *FailedLeadRepositoryImpl) Count(ctx context.Context, filter models.FailedLeadFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.FailedLead{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FailedLeadRepositoryImpl) Exists(ctx context.Context, filter models.FailedLeadFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
