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

// duplicateAssignmentMessage surfaces the one-assignment-per-pair rule
const duplicateAssignmentMessage = "El empleado ya está asignado a esta solicitud"

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	requestRepo    *repository.RequestRepository
	employeeRepo   *repository.EmployeeRepository
	logger         *zap.Logger
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	requestRepo *repository.RequestRepository,
	employeeRepo *repository.EmployeeRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		requestRepo:    requestRepo,
		employeeRepo:   employeeRepo,
		logger:         logger,
	}
}

func (s *AssignmentService) List(ctx context.Context) ([]domain.AssignmentDTO, error) {
	assignments, err := s.assignmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	dtos := make([]domain.AssignmentDTO, len(assignments))
	for i := range assignments {
		dtos[i] = mapper.ToAssignmentDTO(&assignments[i])
	}
	return dtos, nil
}

// Create assigns an employee to a request. A pair that is already assigned is
// a conflict, not a validation failure.
func (s *AssignmentService) Create(ctx context.Context, input *domain.CreateAssignmentInput) (*domain.AssignmentDTO, error) {
	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.RequestID != 0 {
		exists, err := s.requestRepo.Exists(ctx, input.RequestID)
		if err != nil {
			return nil, fmt.Errorf("failed to check request: %w", err)
		}
		if !exists {
			ve.Add("solicitudId", "La solicitud seleccionada no existe")
		}
	}
	if input.EmployeeID != 0 {
		exists, err := s.employeeRepo.Exists(ctx, input.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to check employee: %w", err)
		}
		if !exists {
			ve.Add("empleadoId", "El empleado seleccionado no existe")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	taken, err := s.assignmentRepo.ExistsPair(ctx, input.RequestID, input.EmployeeID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if taken {
		return nil, &domain.ConflictError{Message: duplicateAssignmentMessage}
	}

	assignment := &domain.RequestAssignment{
		RequestID:  input.RequestID,
		EmployeeID: input.EmployeeID,
		Status:     domain.AssignmentStatusAssigned,
	}
	if input.Status != nil {
		assignment.Status = domain.AssignmentStatus(*input.Status)
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: duplicateAssignmentMessage}
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info("assignment created",
		zap.Uint("id", assignment.ID),
		zap.Uint("requestId", assignment.RequestID),
		zap.Uint("employeeId", assignment.EmployeeID))

	created, err := s.assignmentRepo.GetByID(ctx, assignment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload assignment: %w", err)
	}
	dto := mapper.ToAssignmentDTO(created)
	return &dto, nil
}

func (s *AssignmentService) GetByID(ctx context.Context, id uint) (*domain.AssignmentDTO, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("assignment", "Asignación no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	dto := mapper.ToAssignmentDTO(assignment)
	return &dto, nil
}

func (s *AssignmentService) Update(ctx context.Context, id uint, input *domain.UpdateAssignmentInput) (*domain.AssignmentDTO, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("assignment", "Asignación no encontrada", id)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if ve := validation.Struct(input); ve != nil {
		return nil, ve
	}

	if input.Status != nil {
		assignment.Status = domain.AssignmentStatus(*input.Status)
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}

	dto := mapper.ToAssignmentDTO(assignment)
	return &dto, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.assignmentRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("assignment", "Asignación no encontrada", id)
		}
		return fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info("assignment deleted", zap.Uint("id", id))
	return nil
}
