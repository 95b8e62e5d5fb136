package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type RequestItemRepository struct {
	db *gorm.DB
}

func NewRequestItemRepository(db *gorm.DB) *RequestItemRepository {
	return &RequestItemRepository{db: db}
}

func (r *RequestItemRepository) Create(ctx context.Context, item *domain.RequestItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *RequestItemRepository) GetByID(ctx context.Context, id uint) (*domain.RequestItem, error) {
	var item domain.RequestItem
	err := r.db.WithContext(ctx).
		Preload("Procedure").
		Preload("Procedure.MachineryType").
		First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *RequestItemRepository) List(ctx context.Context) ([]domain.RequestItem, error) {
	var items []domain.RequestItem
	err := r.db.WithContext(ctx).
		Preload("Procedure").
		Find(&items).Error
	return items, err
}

func (r *RequestItemRepository) Update(ctx context.Context, item *domain.RequestItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *RequestItemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.RequestItem{}, "id = ?", id).Error
}

func (r *RequestItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RequestItem{}).Count(&count).Error
	return count, err
}
