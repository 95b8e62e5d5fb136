package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Preload("Representative").
		First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.db.WithContext(ctx).
		Preload("Representative").
		Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *CompanyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Company{}, "id = ?", id).Error
}

func (r *CompanyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&count).Error
	return count, err
}

// ExistsByTaxID checks tax id uniqueness, excluding one record on update
func (r *CompanyRepository) ExistsByTaxID(ctx context.Context, taxID string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).
		Where("tax_id = ? AND id <> ?", taxID, excludeID).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks email uniqueness, excluding one record on update
func (r *CompanyRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Company{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
