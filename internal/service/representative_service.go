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

type RepresentativeService struct {
	repRepo     *repository.RepresentativeRepository
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewRepresentativeService(repRepo *repository.RepresentativeRepository, companyRepo *repository.CompanyRepository, logger *zap.Logger) *RepresentativeService {
	return &RepresentativeService{
		repRepo:     repRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (s *RepresentativeService) List(ctx context.Context) ([]domain.RepresentativeDTO, error) {
	reps, err := s.repRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list representatives: %w", err)
	}

	dtos := make([]domain.RepresentativeDTO, len(reps))
	for i := range reps {
		dtos[i] = mapper.ToRepresentativeDTO(&reps[i])
	}
	return dtos, nil
}

func (s *RepresentativeService) Create(ctx context.Context, input *domain.CreateRepresentativeInput) (*domain.RepresentativeDTO, error) {
	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.CompanyID != 0 {
		if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
			if repository.IsNotFound(err) {
				ve.Add("empresaId", "La empresa seleccionada no existe")
			} else {
				return nil, fmt.Errorf("failed to check company: %w", err)
			}
		} else {
			taken, err := s.repRepo.ExistsForCompany(ctx, input.CompanyID, 0)
			if err != nil {
				return nil, fmt.Errorf("failed to check company representative: %w", err)
			}
			if taken {
				ve.Add("empresaId", "La empresa ya tiene un representante registrado")
			}
		}
	}
	if input.DocumentID != "" {
		taken, err := s.repRepo.ExistsByDocument(ctx, input.DocumentID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check document: %w", err)
		}
		if taken {
			ve.Add("documento", "Ya existe un representante con este documento")
		}
	}
	if input.Email != "" {
		taken, err := s.repRepo.ExistsByEmail(ctx, input.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			ve.Add("correo", "Ya existe un representante con este correo")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	rep := &domain.Representative{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		DocumentID: input.DocumentID,
		Phone:      input.Phone,
		Email:      input.Email,
		CompanyID:  input.CompanyID,
	}
	if err := s.repRepo.Create(ctx, rep); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: "Ya existe un representante con este documento, correo o empresa"}
		}
		return nil, fmt.Errorf("failed to create representative: %w", err)
	}

	s.logger.Info("representative created", zap.Uint("id", rep.ID), zap.Uint("companyId", rep.CompanyID))

	created, err := s.repRepo.GetByID(ctx, rep.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload representative: %w", err)
	}
	dto := mapper.ToRepresentativeDTO(created)
	return &dto, nil
}

func (s *RepresentativeService) GetByID(ctx context.Context, id uint) (*domain.RepresentativeDTO, error) {
	rep, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("representative", "Representante no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get representative: %w", err)
	}

	dto := mapper.ToRepresentativeDTO(rep)
	return &dto, nil
}

func (s *RepresentativeService) Update(ctx context.Context, id uint, input *domain.UpdateRepresentativeInput) (*domain.RepresentativeDTO, error) {
	rep, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("representative", "Representante no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get representative: %w", err)
	}

	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.CompanyID != nil && *input.CompanyID != rep.CompanyID {
		if _, err := s.companyRepo.GetByID(ctx, *input.CompanyID); err != nil {
			if repository.IsNotFound(err) {
				ve.Add("empresaId", "La empresa seleccionada no existe")
			} else {
				return nil, fmt.Errorf("failed to check company: %w", err)
			}
		} else {
			taken, err := s.repRepo.ExistsForCompany(ctx, *input.CompanyID, id)
			if err != nil {
				return nil, fmt.Errorf("failed to check company representative: %w", err)
			}
			if taken {
				ve.Add("empresaId", "La empresa ya tiene un representante registrado")
			}
		}
	}
	if input.DocumentID != nil && *input.DocumentID != rep.DocumentID {
		taken, err := s.repRepo.ExistsByDocument(ctx, *input.DocumentID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check document: %w", err)
		}
		if taken {
			ve.Add("documento", "Ya existe un representante con este documento")
		}
	}
	if input.Email != nil && *input.Email != rep.Email {
		taken, err := s.repRepo.ExistsByEmail(ctx, *input.Email, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			ve.Add("correo", "Ya existe un representante con este correo")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if input.FirstName != nil {
		rep.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		rep.LastName = *input.LastName
	}
	if input.DocumentID != nil {
		rep.DocumentID = *input.DocumentID
	}
	if input.Phone != nil {
		rep.Phone = *input.Phone
	}
	if input.Email != nil {
		rep.Email = *input.Email
	}
	if input.CompanyID != nil {
		rep.CompanyID = *input.CompanyID
		rep.Company = nil
	}

	if err := s.repRepo.Update(ctx, rep); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: "Ya existe un representante con este documento, correo o empresa"}
		}
		return nil, fmt.Errorf("failed to update representative: %w", err)
	}

	updated, err := s.repRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload representative: %w", err)
	}
	dto := mapper.ToRepresentativeDTO(updated)
	return &dto, nil
}

func (s *RepresentativeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("representative", "Representante no encontrado", id)
		}
		return fmt.Errorf("failed to get representative: %w", err)
	}

	if err := s.repRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete representative: %w", err)
	}

	s.logger.Info("representative deleted", zap.Uint("id", id))
	return nil
}
