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

type CompanyService struct {
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewCompanyService(companyRepo *repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (s *CompanyService) List(ctx context.Context) ([]domain.CompanyDTO, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	dtos := make([]domain.CompanyDTO, len(companies))
	for i := range companies {
		dtos[i] = mapper.ToCompanyDTO(&companies[i])
	}
	return dtos, nil
}

func (s *CompanyService) Create(ctx context.Context, input *domain.CreateCompanyInput) (*domain.CompanyDTO, error) {
	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.TaxID != "" {
		taken, err := s.companyRepo.ExistsByTaxID(ctx, input.TaxID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check tax id: %w", err)
		}
		if taken {
			ve.Add("nit", "Ya existe una empresa con este NIT")
		}
	}
	if input.Email != "" {
		taken, err := s.companyRepo.ExistsByEmail(ctx, input.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			ve.Add("correo", "Ya existe una empresa con este correo")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	company := &domain.Company{
		Name:    input.Name,
		TaxID:   input.TaxID,
		Address: input.Address,
		Phone:   input.Phone,
		Email:   input.Email,
		City:    input.City,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: "Ya existe una empresa con este NIT o correo"}
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.logger.Info("company created", zap.Uint("id", company.ID), zap.String("taxId", company.TaxID))

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id uint) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("company", "Empresa no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

func (s *CompanyService) Update(ctx context.Context, id uint, input *domain.UpdateCompanyInput) (*domain.CompanyDTO, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("company", "Empresa no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.TaxID != nil && *input.TaxID != company.TaxID {
		taken, err := s.companyRepo.ExistsByTaxID(ctx, *input.TaxID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check tax id: %w", err)
		}
		if taken {
			ve.Add("nit", "Ya existe una empresa con este NIT")
		}
	}
	if input.Email != nil && *input.Email != company.Email {
		taken, err := s.companyRepo.ExistsByEmail(ctx, *input.Email, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			ve.Add("correo", "Ya existe una empresa con este correo")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.TaxID != nil {
		company.TaxID = *input.TaxID
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}
	if input.Email != nil {
		company.Email = *input.Email
	}
	if input.City != nil {
		company.City = *input.City
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: "Ya existe una empresa con este NIT o correo"}
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	dto := mapper.ToCompanyDTO(company)
	return &dto, nil
}

// Delete removes the company along with its representative, requests, request
// items and assignments through the cascading foreign keys.
func (s *CompanyService) Delete(ctx context.Context, id uint) error {
	if _, err := s.companyRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("company", "Empresa no encontrada", id)
		}
		return fmt.Errorf("failed to get company: %w", err)
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	s.logger.Info("company deleted", zap.Uint("id", id))
	return nil
}
