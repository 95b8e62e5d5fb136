package service

import (
	"context"
	"fmt"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/mapper"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/validation"
	"go.uber.org/zap"
)

// duplicateProcedureMessage is attached to "codigo" when a (code, machinery
// type) pair already exists. The same code under a different type is allowed.
const duplicateProcedureMessage = "Ya existe un mantenimiento con este código para este tipo de maquinaria"

type ProcedureService struct {
	procedureRepo *repository.ProcedureRepository
	typeRepo      *repository.MachineryTypeRepository
	logger        *zap.Logger
}

func NewProcedureService(procedureRepo *repository.ProcedureRepository, typeRepo *repository.MachineryTypeRepository, logger *zap.Logger) *ProcedureService {
	return &ProcedureService{
		procedureRepo: procedureRepo,
		typeRepo:      typeRepo,
		logger:        logger,
	}
}

func (s *ProcedureService) List(ctx context.Context) ([]domain.ProcedureDTO, error) {
	procs, err := s.procedureRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}

	dtos := make([]domain.ProcedureDTO, len(procs))
	for i := range procs {
		dtos[i] = mapper.ToProcedureDTO(&procs[i])
	}
	return dtos, nil
}

func (s *ProcedureService) Create(ctx context.Context, input *domain.CreateProcedureInput) (*domain.ProcedureDTO, error) {
	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.MachineryTypeID != 0 {
		exists, err := s.typeRepo.Exists(ctx, input.MachineryTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check machinery type: %w", err)
		}
		if !exists {
			ve.Add("tipoMaquinariaId", "El tipo de maquinaria seleccionado no existe")
		}
	}

	if input.Code != "" && input.MachineryTypeID != 0 {
		dup, err := s.procedureRepo.ExistsByCodeAndType(ctx, input.Code, input.MachineryTypeID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check procedure code: %w", err)
		}
		if dup {
			ve.Add("codigo", duplicateProcedureMessage)
		} else {
			elsewhere, err := s.procedureRepo.CodeExistsUnderOtherType(ctx, input.Code, input.MachineryTypeID)
			if err != nil {
				return nil, fmt.Errorf("failed to check procedure code: %w", err)
			}
			if elsewhere {
				s.logger.Debug("procedure code reused under another machinery type",
					zap.String("code", input.Code),
					zap.Uint("machineryTypeId", input.MachineryTypeID))
			}
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	proc := &domain.MaintenanceProcedure{
		Code:            input.Code,
		Name:            input.Name,
		Description:     input.Description,
		Cost:            *input.Cost,
		DurationHours:   input.DurationHours,
		Manual:          input.Manual,
		MachineryTypeID: input.MachineryTypeID,
	}
	if err := s.procedureRepo.Create(ctx, proc); err != nil {
		// A concurrent writer can slip the same pair in between the check
		// and the insert; the composite index catches it.
		if repository.IsUniqueViolation(err) {
			dup := domain.NewValidationError()
			dup.Add("codigo", duplicateProcedureMessage)
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create procedure: %w", err)
	}

	s.logger.Info("procedure created",
		zap.Uint("id", proc.ID),
		zap.String("code", proc.Code),
		zap.Uint("machineryTypeId", proc.MachineryTypeID))

	created, err := s.procedureRepo.GetByID(ctx, proc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload procedure: %w", err)
	}
	dto := mapper.ToProcedureDTO(created)
	return &dto, nil
}

func (s *ProcedureService) GetByID(ctx context.Context, id uint) (*domain.ProcedureDTO, error) {
	proc, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("procedure", "Mantenimiento no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}

	dto := mapper.ToProcedureDTO(proc)
	return &dto, nil
}

func (s *ProcedureService) Update(ctx context.Context, id uint, input *domain.UpdateProcedureInput) (*domain.ProcedureDTO, error) {
	proc, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("procedure", "Mantenimiento no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}

	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	code := proc.Code
	if input.Code != nil {
		code = *input.Code
	}
	typeID := proc.MachineryTypeID
	if input.MachineryTypeID != nil {
		typeID = *input.MachineryTypeID
	}

	if input.MachineryTypeID != nil && *input.MachineryTypeID != proc.MachineryTypeID {
		exists, err := s.typeRepo.Exists(ctx, typeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check machinery type: %w", err)
		}
		if !exists {
			ve.Add("tipoMaquinariaId", "El tipo de maquinaria seleccionado no existe")
		}
	}

	// The pair has to be re-checked whenever either half of it moves.
	if code != proc.Code || typeID != proc.MachineryTypeID {
		dup, err := s.procedureRepo.ExistsByCodeAndType(ctx, code, typeID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check procedure code: %w", err)
		}
		if dup {
			ve.Add("codigo", duplicateProcedureMessage)
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	proc.Code = code
	if input.Name != nil {
		proc.Name = *input.Name
	}
	if input.Description != nil {
		proc.Description = *input.Description
	}
	if input.Cost != nil {
		proc.Cost = *input.Cost
	}
	if input.DurationHours != nil {
		proc.DurationHours = input.DurationHours
	}
	if input.Manual != nil {
		proc.Manual = *input.Manual
	}
	if input.MachineryTypeID != nil {
		proc.MachineryTypeID = *input.MachineryTypeID
		proc.MachineryType = nil
	}

	if err := s.procedureRepo.Update(ctx, proc); err != nil {
		if repository.IsUniqueViolation(err) {
			dup := domain.NewValidationError()
			dup.Add("codigo", duplicateProcedureMessage)
			return nil, dup
		}
		return nil, fmt.Errorf("failed to update procedure: %w", err)
	}

	updated, err := s.procedureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload procedure: %w", err)
	}
	dto := mapper.ToProcedureDTO(updated)
	return &dto, nil
}

func (s *ProcedureService) Delete(ctx context.Context, id uint) error {
	if _, err := s.procedureRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("procedure", "Mantenimiento no encontrado", id)
		}
		return fmt.Errorf("failed to get procedure: %w", err)
	}

	if err := s.procedureRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete procedure: %w", err)
	}

	s.logger.Info("procedure deleted", zap.Uint("id", id))
	return nil
}
