package repository

import (
	"context"
	"errors"

	"github.com/ilmi-school/landing-analytics/models"
	"gorm.io/gorm"
)

// SectionViewRepositoryImpl implements SectionViewRepository
type SectionViewRepositoryImpl struct {
	*BaseRepository[models.SectionView, models.SectionViewFilter]
}

func NewSectionViewRepository(db *gorm.DB) SectionViewRepository {
	return &SectionViewRepositoryImpl{BaseRepository: NewBaseRepository[models.SectionView, models.SectionViewFilter](db)}
}

func (r *SectionViewRepositoryImpl) ByID(ctx context.Context, id uint) (*models.SectionView, error) {
	db := r.getDB(ctx)
	var row models.SectionView
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *SectionViewRepositoryImpl) applyFilter(db *gorm.DB, f models.SectionViewFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.SessionID != nil {
		db = db.Where("session_id = ?", *f.SessionID)
	}
	if f.PagePath != nil {
		db = db.Where("page_path = ?", *f.PagePath)
	}
	if f.SectionID != nil {
		db = db.Where("section_id = ?", *f.SectionID)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *SectionViewRepositoryImpl) ByFilter(ctx context.Context, filter models.SectionViewFilter, orderBy string, limit, offset int) ([]*models.SectionView, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SectionView{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.SectionView
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *SectionViewRepositoryImpl) Count(ctx context.Context, filter models.SectionViewFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.SectionView{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SectionViewRepositoryImpl) Exists(ctx context.Context, filter models.SectionViewFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
