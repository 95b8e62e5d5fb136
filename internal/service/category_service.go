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

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.CategoryDTO, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	dtos := make([]domain.CategoryDTO, len(categories))
	for i := range categories {
		dtos[i] = mapper.ToCategoryDTO(&categories[i])
	}
	return dtos, nil
}

func (s *CategoryService) Create(ctx context.Context, input *domain.CreateCategoryInput) (*domain.CategoryDTO, error) {
	if ve := validation.Struct(input); ve != nil {
		return nil, ve
	}

	category := &domain.MachineryCategory{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created", zap.Uint("id", category.ID), zap.String("name", category.Name))

	dto := mapper.ToCategoryDTO(category)
	return &dto, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*domain.CategoryDTO, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("category", "Categoría no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	dto := mapper.ToCategoryDTO(category)
	return &dto, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, input *domain.UpdateCategoryInput) (*domain.CategoryDTO, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("category", "Categoría no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	if ve := validation.Struct(input); ve != nil {
		return nil, ve
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	dto := mapper.ToCategoryDTO(category)
	return &dto, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("category", "Categoría no encontrada", id)
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted", zap.Uint("id", id))
	return nil
}
