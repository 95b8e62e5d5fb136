package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.RequestAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uint) (*domain.RequestAssignment, error) {
	var assignment domain.RequestAssignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Request").
		First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) List(ctx context.Context) ([]domain.RequestAssignment, error) {
	var assignments []domain.RequestAssignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Request").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(ctx context.Context, assignment *domain.RequestAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.RequestAssignment{}, "id = ?", id).Error
}

func (r *AssignmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RequestAssignment{}).Count(&count).Error
	return count, err
}

// ExistsPair is the pre-write check for the at-most-once assignment rule
// between a request and an employee; the composite unique index backs it.
func (r *AssignmentRepository) ExistsPair(ctx context.Context, requestID, employeeID uint, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.RequestAssignment{}).
		Where("request_id = ? AND employee_id = ? AND id <> ?", requestID, employeeID, excludeID).
		Count(&count).Error
	return count > 0, err
}
