package repository

import (
	"context"
	"errors"

	"github.com/ilmi-school/landing-analytics/models"
	"gorm.io/gorm"
)

// PageViewRepositoryImpl implements PageViewRepository
type PageViewRepositoryImpl struct {
	*BaseRepository[models.PageView, models.PageViewFilter]
}

func NewPageViewRepository(db *gorm.DB) PageViewRepository {
	return &PageViewRepositoryImpl{BaseRepository: NewBaseRepository[models.PageView, models.PageViewFilter](db)}
}

func (r *PageViewRepositoryImpl) ByID(ctx context.Context, id uint) (*models.PageView, error) {
	db := r.getDB(ctx)
	var row models.PageView
	if err := db.Last(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *PageViewRepositoryImpl) applyFilter(db *gorm.DB, f models.PageViewFilter) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.SessionID != nil {
		db = db.Where("session_id = ?", *f.SessionID)
	}
	if f.PagePath != nil {
		db = db.Where("page_path = ?", *f.PagePath)
	}
	if f.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		db = db.Where("created_at < ?", *f.CreatedBefore)
	}
	return db
}

func (r *PageViewRepositoryImpl) ByFilter(ctx context.Context, filter models.PageViewFilter, orderBy string, limit, offset int) ([]*models.PageView, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PageView{}), filter)
	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	var rows []*models.PageView
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PageViewRepositoryImpl) Count(ctx context.Context, filter models.PageViewFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.PageView{}), filter)
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PageViewRepositoryImpl) Exists(ctx context.Context, filter models.PageViewFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
