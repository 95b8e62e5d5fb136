package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type RepresentativeRepository struct {
	db *gorm.DB
}

func NewRepresentativeRepository(db *gorm.DB) *RepresentativeRepository {
	return &RepresentativeRepository{db: db}
}

func (r *RepresentativeRepository) Create(ctx context.Context, rep *domain.Representative) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *RepresentativeRepository) GetByID(ctx context.Context, id uint) (*domain.Representative, error) {
	var rep domain.Representative
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&rep, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *RepresentativeRepository) List(ctx context.Context) ([]domain.Representative, error) {
	var reps []domain.Representative
	err := r.db.WithContext(ctx).
		Preload("Company").
		Find(&reps).Error
	return reps, err
}

func (r *RepresentativeRepository) Update(ctx context.Context, rep *domain.Representative) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *RepresentativeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Representative{}, "id = ?", id).Error
}

func (r *RepresentativeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Representative{}).Count(&count).Error
	return count, err
}

func (r *RepresentativeRepository) ExistsByDocument(ctx context.Context, document string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Representative{}).
		Where("document_id = ? AND id <> ?", document, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *RepresentativeRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Representative{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsForCompany checks the one-representative-per-company rule, excluding
// one record on update
func (r *RepresentativeRepository) ExistsForCompany(ctx context.Context, companyID uint, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Representative{}).
		Where("company_id = ? AND id <> ?", companyID, excludeID).
		Count(&count).Error
	return count > 0, err
}
