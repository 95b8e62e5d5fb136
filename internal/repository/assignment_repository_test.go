package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepository_PairUniqueness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	employee := testutil.CreateEmployee(t, db, "Laura", "Rojas")
	req := testutil.CreateRequest(t, db, company.ID, "SOL-100",
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	first := &domain.RequestAssignment{
		RequestID:  req.ID,
		EmployeeID: employee.ID,
		Status:     domain.AssignmentStatusAssigned,
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &domain.RequestAssignment{
		RequestID:  req.ID,
		EmployeeID: employee.ID,
		Status:     domain.AssignmentStatusAssigned,
	}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))
}

func TestAssignmentRepository_ExistsPair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	employee := testutil.CreateEmployee(t, db, "Laura", "Rojas")
	other := testutil.CreateEmployee(t, db, "Diego", "Salas")
	req := testutil.CreateRequest(t, db, company.ID, "SOL-101",
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	assignment := testutil.CreateAssignment(t, db, req.ID, employee.ID)

	exists, err := repo.ExistsPair(ctx, req.ID, employee.ID, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsPair(ctx, req.ID, employee.ID, assignment.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsPair(ctx, req.ID, other.ID, 0)
	require.NoError(t, err)
	assert.False(t, exists)
}
