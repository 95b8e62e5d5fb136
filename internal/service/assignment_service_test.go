package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"github.com/tecnimaq/maintenance-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createAssignmentService(db *gorm.DB) *service.AssignmentService {
	return service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewRequestRepository(db),
		repository.NewEmployeeRepository(db),
		zap.NewNop(),
	)
}

func TestAssignmentService_Create_DefaultsToAssigned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAssignmentService(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	employee := testutil.CreateEmployee(t, db, "Laura", "Rojas")
	req := testutil.CreateRequest(t, db, company.ID, "SOL-300",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	dto, err := svc.Create(ctx, &domain.CreateAssignmentInput{
		RequestID:  req.ID,
		EmployeeID: employee.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusAssigned, dto.Status)
	require.NotNil(t, dto.Employee)
	assert.Equal(t, "Rojas", dto.Employee.LastName)
}

func TestAssignmentService_Create_DuplicatePairConflicts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAssignmentService(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	employee := testutil.CreateEmployee(t, db, "Laura", "Rojas")
	req := testutil.CreateRequest(t, db, company.ID, "SOL-301",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateAssignment(t, db, req.ID, employee.ID)

	_, err := svc.Create(ctx, &domain.CreateAssignmentInput{
		RequestID:  req.ID,
		EmployeeID: employee.ID,
	})
	require.Error(t, err)

	ce, ok := domain.AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, "El empleado ya está asignado a esta solicitud", ce.Message)
}

func TestAssignmentService_Create_UnknownReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAssignmentService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateAssignmentInput{
		RequestID:  99999,
		EmployeeID: 99999,
	})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "solicitudId")
	assert.Contains(t, ve.Fields, "empleadoId")
}

func TestAssignmentService_Update_Status(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAssignmentService(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	employee := testutil.CreateEmployee(t, db, "Laura", "Rojas")
	req := testutil.CreateRequest(t, db, company.ID, "SOL-302",
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assignment := testutil.CreateAssignment(t, db, req.ID, employee.ID)

	status := "completed"
	dto, err := svc.Update(ctx, assignment.ID, &domain.UpdateAssignmentInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentStatusCompleted, dto.Status)
}

func TestAssignmentService_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createAssignmentService(db)

	err := svc.Delete(context.Background(), 99999)
	require.Error(t, err)

	nfe, ok := domain.AsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Asignación no encontrada", nfe.Message)
}
