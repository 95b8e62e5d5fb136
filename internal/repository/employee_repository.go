package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns employees sorted by last name ascending
func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Order("last_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Employee{}, "id = ?", id).Error
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).Count(&count).Error
	return count, err
}

// Exists reports whether an employee with the id is present
func (r *EmployeeRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) ExistsByDocument(ctx context.Context, document string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("document_id = ? AND id <> ?", document, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}
