package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type MachineryTypeRepository struct {
	db *gorm.DB
}

func NewMachineryTypeRepository(db *gorm.DB) *MachineryTypeRepository {
	return &MachineryTypeRepository{db: db}
}

func (r *MachineryTypeRepository) Create(ctx context.Context, mt *domain.MachineryType) error {
	return r.db.WithContext(ctx).Create(mt).Error
}

func (r *MachineryTypeRepository) GetByID(ctx context.Context, id uint) (*domain.MachineryType, error) {
	var mt domain.MachineryType
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Procedures").
		First(&mt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

func (r *MachineryTypeRepository) List(ctx context.Context) ([]domain.MachineryType, error) {
	var types []domain.MachineryType
	err := r.db.WithContext(ctx).
		Preload("Category").
		Find(&types).Error
	return types, err
}

func (r *MachineryTypeRepository) Update(ctx context.Context, mt *domain.MachineryType) error {
	return r.db.WithContext(ctx).Save(mt).Error
}

func (r *MachineryTypeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.MachineryType{}, "id = ?", id).Error
}

func (r *MachineryTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MachineryType{}).Count(&count).Error
	return count, err
}

// Exists reports whether a machinery type with the id is present
func (r *MachineryTypeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MachineryType{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
