package repository

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type ProcedureRepository struct {
	db *gorm.DB
}

func NewProcedureRepository(db *gorm.DB) *ProcedureRepository {
	return &ProcedureRepository{db: db}
}

func (r *ProcedureRepository) Create(ctx context.Context, proc *domain.MaintenanceProcedure) error {
	return r.db.WithContext(ctx).Create(proc).Error
}

func (r *ProcedureRepository) GetByID(ctx context.Context, id uint) (*domain.MaintenanceProcedure, error) {
	var proc domain.MaintenanceProcedure
	err := r.db.WithContext(ctx).
		Preload("MachineryType").
		Preload("MachineryType.Category").
		First(&proc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &proc, nil
}

func (r *ProcedureRepository) List(ctx context.Context) ([]domain.MaintenanceProcedure, error) {
	var procs []domain.MaintenanceProcedure
	err := r.db.WithContext(ctx).
		Preload("MachineryType").
		Find(&procs).Error
	return procs, err
}

func (r *ProcedureRepository) Update(ctx context.Context, proc *domain.MaintenanceProcedure) error {
	return r.db.WithContext(ctx).Save(proc).Error
}

func (r *ProcedureRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.MaintenanceProcedure{}, "id = ?", id).Error
}

func (r *ProcedureRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MaintenanceProcedure{}).Count(&count).Error
	return count, err
}

// ExistsByCodeAndType is the pre-write check for the composite uniqueness
// rule: a different record with the same code under the same machinery type.
// The composite unique index remains the backstop against concurrent writers.
func (r *ProcedureRepository) ExistsByCodeAndType(ctx context.Context, code string, machineryTypeID uint, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MaintenanceProcedure{}).
		Where("code = ? AND machinery_type_id = ? AND id <> ?", code, machineryTypeID, excludeID).
		Count(&count).Error
	return count > 0, err
}

// CodeExistsUnderOtherType answers whether the code is already used under a
// different machinery type. Diagnostic only: repeating a code across types is
// explicitly permitted.
func (r *ProcedureRepository) CodeExistsUnderOtherType(ctx context.Context, code string, machineryTypeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.MaintenanceProcedure{}).
		Where("code = ? AND machinery_type_id <> ?", code, machineryTypeID).
		Count(&count).Error
	return count > 0, err
}
