package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.MachineryCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*domain.MachineryCategory, error) {
	var category domain.MachineryCategory
	err := r.db.WithContext(ctx).
		Preload("Types").
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.MachineryCategory, error) {
	var categories []domain.MachineryCategory
	err := r.db.WithContext(ctx).
		Preload("Types").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.MachineryCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.MachineryCategory{}, "id = ?", id).Error
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MachineryCategory{}).Count(&count).Error
	return count, err
}
