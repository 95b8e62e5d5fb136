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

type MachineryTypeService struct {
	typeRepo     *repository.MachineryTypeRepository
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewMachineryTypeService(typeRepo *repository.MachineryTypeRepository, categoryRepo *repository.CategoryRepository, logger *zap.Logger) *MachineryTypeService {
	return &MachineryTypeService{
		typeRepo:     typeRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *MachineryTypeService) List(ctx context.Context) ([]domain.MachineryTypeDTO, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list machinery types: %w", err)
	}

	dtos := make([]domain.MachineryTypeDTO, len(types))
	for i := range types {
		dtos[i] = mapper.ToMachineryTypeDTO(&types[i])
	}
	return dtos, nil
}

func (s *MachineryTypeService) Create(ctx context.Context, input *domain.CreateMachineryTypeInput) (*domain.MachineryTypeDTO, error) {
	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.CategoryID != 0 {
		if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
			if repository.IsNotFound(err) {
				ve.Add("categoriaId", "La categoría seleccionada no existe")
			} else {
				return nil, fmt.Errorf("failed to check category: %w", err)
			}
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	mt := &domain.MachineryType{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}
	if err := s.typeRepo.Create(ctx, mt); err != nil {
		return nil, fmt.Errorf("failed to create machinery type: %w", err)
	}

	s.logger.Info("machinery type created", zap.Uint("id", mt.ID), zap.String("name", mt.Name))

	created, err := s.typeRepo.GetByID(ctx, mt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload machinery type: %w", err)
	}
	dto := mapper.ToMachineryTypeDTO(created)
	return &dto, nil
}

func (s *MachineryTypeService) GetByID(ctx context.Context, id uint) (*domain.MachineryTypeDTO, error) {
	mt, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("machinery_type", "Tipo de maquinaria no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get machinery type: %w", err)
	}

	dto := mapper.ToMachineryTypeDTO(mt)
	return &dto, nil
}

func (s *MachineryTypeService) Update(ctx context.Context, id uint, input *domain.UpdateMachineryTypeInput) (*domain.MachineryTypeDTO, error) {
	mt, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("machinery_type", "Tipo de maquinaria no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get machinery type: %w", err)
	}

	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.CategoryID != nil && *input.CategoryID != mt.CategoryID {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if repository.IsNotFound(err) {
				ve.Add("categoriaId", "La categoría seleccionada no existe")
			} else {
				return nil, fmt.Errorf("failed to check category: %w", err)
			}
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if input.Name != nil {
		mt.Name = *input.Name
	}
	if input.Description != nil {
		mt.Description = *input.Description
	}
	if input.CategoryID != nil {
		mt.CategoryID = *input.CategoryID
		mt.Category = nil
	}

	if err := s.typeRepo.Update(ctx, mt); err != nil {
		return nil, fmt.Errorf("failed to update machinery type: %w", err)
	}

	updated, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload machinery type: %w", err)
	}
	dto := mapper.ToMachineryTypeDTO(updated)
	return &dto, nil
}

func (s *MachineryTypeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.typeRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("machinery_type", "Tipo de maquinaria no encontrado", id)
		}
		return fmt.Errorf("failed to get machinery type: %w", err)
	}

	if err := s.typeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete machinery type: %w", err)
	}

	s.logger.Info("machinery type deleted", zap.Uint("id", id))
	return nil
}
