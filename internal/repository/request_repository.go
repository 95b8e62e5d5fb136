package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// withRelations preloads the aggregate a request is served with: its company,
// its line-items with their procedures, and its assignments with employees.
// Batched Preload avoids the N+1 traversal of lazy relation loading.
func (r *RequestRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Company").
		Preload("Items.Procedure").
		Preload("Assignments.Employee")
}

func (r *RequestRepository) GetByID(ctx context.Context, id uint) (*domain.MaintenanceRequest, error) {
	var req domain.MaintenanceRequest
	err := r.withRelations(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) GetByCode(ctx context.Context, code string) (*domain.MaintenanceRequest, error) {
	var req domain.MaintenanceRequest
	err := r.withRelations(ctx).
		Preload("Items.Procedure.MachineryType").
		First(&req, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) List(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	var reqs []domain.MaintenanceRequest
	err := r.withRelations(ctx).Find(&reqs).Error
	return reqs, err
}

func (r *RequestRepository) Update(ctx context.Context, req *domain.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *RequestRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.MaintenanceRequest{}, "id = ?", id).Error
}

func (r *RequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MaintenanceRequest{}).Count(&count).Error
	return count, err
}

// ExistsByCode checks request code uniqueness, excluding one record on update
func (r *RequestRepository) ExistsByCode(ctx context.Context, code string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MaintenanceRequest{}).
		Where("code = ? AND id <> ?", code, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Exists reports whether a request with the id is present
func (r *RequestRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MaintenanceRequest{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// CountByStatus groups requests per lifecycle status
func (r *RequestRepository) CountByStatus(ctx context.Context) ([]domain.RequestStatusCount, error) {
	var rows []domain.RequestStatusCount
	err := r.db.WithContext(ctx).Model(&domain.MaintenanceRequest{}).
		Select("status AS status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	return rows, err
}
