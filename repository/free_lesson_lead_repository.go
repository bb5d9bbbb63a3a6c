package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ilmi-school/landing-analytics/models"
	"gorm.io/gorm"
)

// FreeLessonLeadRepositoryImpl implements FreeLessonLeadRepository
type FreeLessonLeadRepositoryImpl struct {
	*BaseRepository[models.FreeLessonLead, models.FreeLessonLeadFilter]
}

func NewFreeLessonLeadRepository(db *gorm.DB) FreeLessonLeadRepository {
	return &FreeLessonLeadRepositoryImpl{BaseRepository: NewBaseRepository[models.FreeLessonLead, models.FreeLessonLeadFilter](db)}
}

// ByID is unused for leads (uuid primary key); kept for interface parity.
func (r *FreeLessonLeadRepositoryImpl) ByID(ctx context.Context, id uint) (*models.FreeLessonLead, error) {
	return nil, errors.New("free lesson leads are keyed by uuid, use ByLeadID")
}

func (r *FreeLessonLeadRepositoryImpl) ByLeadID(ctx context.Context, id string) (*models.FreeLessonLead, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	db := r.getDB(ctx)
	var row models.FreeLessonLead
	if err := db.Where("id = ?", parsed).Last(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *FreeLessonLeadRepositoryImpl) applyFilter(db *gorm.DB, f models.FreeLessonLeadFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.SessionID != nil {
		db = db.Where("session_id = ?", *f.SessionID)
	}
	if f.CourseSlug != nil {
		db = db.Where("course_slug = ?", *f.CourseSlug)
	}
	if f.Phone != nil {
		db = db.Where("phone = ?", *f.Phone)
	}
	if f.IsValidNumber != nil {
		db = db.Where("is_valid_number = ?", *f.IsValidNumber)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *FreeLessonLeadRepositoryImpl) ByFilter(ctx context.Context, filter models.FreeLessonLeadFilter, orderBy string, limit, offset int) ([]*models.FreeLessonLead, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.FreeLessonLead{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.FreeLessonLead
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *FreeLessonLeadRepositoryImpl) Count(ctx context.Context, filter models.FreeLessonLeadFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.FreeLessonLead{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FreeLessonLeadRepositoryImpl) Exists(ctx context.Context, filter models.FreeLessonLeadFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
