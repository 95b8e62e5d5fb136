package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/mapper"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/validation"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type RequestService struct {
	requestRepo *repository.RequestRepository
	companyRepo *repository.CompanyRepository
	logger      *zap.Logger
}

func NewRequestService(requestRepo *repository.RequestRepository, companyRepo *repository.CompanyRepository, logger *zap.Logger) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

func (s *RequestService) List(ctx context.Context) ([]domain.RequestDTO, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	dtos := make([]domain.RequestDTO, len(requests))
	for i := range requests {
		dtos[i] = mapper.ToRequestDTO(&requests[i])
	}
	return dtos, nil
}

func (s *RequestService) Create(ctx context.Context, input *domain.CreateRequestInput) (*domain.RequestDTO, error) {
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
		}
	}
	if input.Code != "" {
		taken, err := s.requestRepo.ExistsByCode(ctx, input.Code, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check request code: %w", err)
		}
		if taken {
			ve.Add("codigo", "Ya existe una solicitud con este código")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	requestDate, err := time.Parse(dateLayout, input.RequestDate)
	if err != nil {
		ve.Add("fechaSolicitud", "La fecha debe tener el formato YYYY-MM-DD")
		return nil, ve
	}

	req := &domain.MaintenanceRequest{
		Code:        input.Code,
		RequestDate: requestDate,
		Status:      domain.RequestStatusPending,
		Notes:       input.Notes,
		Description: input.Description,
		CompanyID:   input.CompanyID,
	}
	if input.Status != nil {
		req.Status = domain.RequestStatus(*input.Status)
	}
	if input.DesiredBy != nil {
		desired, err := time.Parse(dateLayout, *input.DesiredBy)
		if err != nil {
			ve.Add("fechaDeseada", "La fecha debe tener el formato YYYY-MM-DD")
			return nil, ve
		}
		req.DesiredBy = &desired
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		if repository.IsUniqueViolation(err) {
			dup := domain.NewValidationError()
			dup.Add("codigo", "Ya existe una solicitud con este código")
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.logger.Info("request created",
		zap.Uint("id", req.ID),
		zap.String("code", req.Code),
		zap.Uint("companyId", req.CompanyID))

	created, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}
	dto := mapper.ToRequestDTO(created)
	return &dto, nil
}

func (s *RequestService) GetByID(ctx context.Context, id uint) (*domain.RequestDTO, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("request", "Solicitud no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	dto := mapper.ToRequestDTO(req)
	return &dto, nil
}

func (s *RequestService) Update(ctx context.Context, id uint, input *domain.UpdateRequestInput) (*domain.RequestDTO, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("request", "Solicitud no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.CompanyID != nil && *input.CompanyID != req.CompanyID {
		if _, err := s.companyRepo.GetByID(ctx, *input.CompanyID); err != nil {
			if repository.IsNotFound(err) {
				ve.Add("empresaId", "La empresa seleccionada no existe")
			} else {
				return nil, fmt.Errorf("failed to check company: %w", err)
			}
		}
	}
	if input.Code != nil && *input.Code != req.Code {
		taken, err := s.requestRepo.ExistsByCode(ctx, *input.Code, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check request code: %w", err)
		}
		if taken {
			ve.Add("codigo", "Ya existe una solicitud con este código")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if input.Code != nil {
		req.Code = *input.Code
	}
	if input.RequestDate != nil {
		requestDate, err := time.Parse(dateLayout, *input.RequestDate)
		if err != nil {
			ve.Add("fechaSolicitud", "La fecha debe tener el formato YYYY-MM-DD")
			return nil, ve
		}
		req.RequestDate = requestDate
	}
	if input.Status != nil {
		req.Status = domain.RequestStatus(*input.Status)
	}
	if input.Notes != nil {
		req.Notes = *input.Notes
	}
	if input.Description != nil {
		req.Description = *input.Description
	}
	if input.DesiredBy != nil {
		desired, err := time.Parse(dateLayout, *input.DesiredBy)
		if err != nil {
			ve.Add("fechaDeseada", "La fecha debe tener el formato YYYY-MM-DD")
			return nil, ve
		}
		req.DesiredBy = &desired
	}
	if input.CompanyID != nil {
		req.CompanyID = *input.CompanyID
		req.Company = nil
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		if repository.IsUniqueViolation(err) {
			dup := domain.NewValidationError()
			dup.Add("codigo", "Ya existe una solicitud con este código")
			return nil, dup
		}
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	updated, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}
	dto := mapper.ToRequestDTO(updated)
	return &dto, nil
}

// Delete removes the request and cascades into its items and assignments. The
// item photos stay in the blob store; only item-level deletion reclaims them.
func (s *RequestService) Delete(ctx context.Context, id uint) error {
	if _, err := s.requestRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("request", "Solicitud no encontrada", id)
		}
		return fmt.Errorf("failed to get request: %w", err)
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}

	s.logger.Info("request deleted", zap.Uint("id", id))
	return nil
}
