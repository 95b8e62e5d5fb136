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

type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	logger       *zap.Logger
}

func NewEmployeeService(employeeRepo *repository.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.EmployeeDTO, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	dtos := make([]domain.EmployeeDTO, len(employees))
	for i := range employees {
		dtos[i] = mapper.ToEmployeeDTO(&employees[i])
	}
	return dtos, nil
}

func (s *EmployeeService) Create(ctx context.Context, input *domain.CreateEmployeeInput) (*domain.EmployeeDTO, error) {
	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.DocumentID != "" {
		taken, err := s.employeeRepo.ExistsByDocument(ctx, input.DocumentID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check document: %w", err)
		}
		if taken {
			ve.Add("documento", "Ya existe un empleado con este documento")
		}
	}
	if input.Email != "" {
		taken, err := s.employeeRepo.ExistsByEmail(ctx, input.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			ve.Add("correo", "Ya existe un empleado con este correo")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	employee := &domain.Employee{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		DocumentID: input.DocumentID,
		Email:      input.Email,
		Address:    input.Address,
		Phone:      input.Phone,
	}
	if input.Role != nil {
		role := domain.Role(*input.Role)
		employee.Role = &role
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: "Ya existe un empleado con este documento o correo"}
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info("employee created", zap.Uint("id", employee.ID), zap.String("document", employee.DocumentID))

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uint) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("employee", "Empleado no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uint, input *domain.UpdateEmployeeInput) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("employee", "Empleado no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.DocumentID != nil && *input.DocumentID != employee.DocumentID {
		taken, err := s.employeeRepo.ExistsByDocument(ctx, *input.DocumentID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check document: %w", err)
		}
		if taken {
			ve.Add("documento", "Ya existe un empleado con este documento")
		}
	}
	if input.Email != nil && *input.Email != employee.Email {
		taken, err := s.employeeRepo.ExistsByEmail(ctx, *input.Email, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			ve.Add("correo", "Ya existe un empleado con este correo")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if input.FirstName != nil {
		employee.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		employee.LastName = *input.LastName
	}
	if input.DocumentID != nil {
		employee.DocumentID = *input.DocumentID
	}
	if input.Email != nil {
		employee.Email = *input.Email
	}
	if input.Address != nil {
		employee.Address = *input.Address
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Role != nil {
		role := domain.Role(*input.Role)
		employee.Role = &role
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: "Ya existe un empleado con este documento o correo"}
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("employee", "Empleado no encontrado", id)
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.logger.Info("employee deleted", zap.Uint("id", id))
	return nil
}
