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

func TestReportRepository_EmployeesByLastName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	testutil.CreateEmployee(t, db, "Carlos", "Zambrano")
	testutil.CreateEmployee(t, db, "Marta", "Acosta")
	testutil.CreateEmployee(t, db, "Julia", "Mendoza")

	rows, err := repo.EmployeesByLastName(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Acosta", rows[0].LastName)
	assert.Equal(t, "Mendoza", rows[1].LastName)
	assert.Equal(t, "Zambrano", rows[2].LastName)
}

func TestReportRepository_ExpensiveHeavyProcedures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	heavy := testutil.CreateCategory(t, db, "Heavy machinery")
	light := testutil.CreateCategory(t, db, "Maquinaria liviana")
	bulldozer := testutil.CreateMachineryType(t, db, "Bulldozer", heavy.ID)
	compactor := testutil.CreateMachineryType(t, db, "Compactador", light.ID)

	// Above threshold under the heavy category: included
	testutil.CreateProcedure(t, db, "MT-500", 1_500_000, bulldozer.ID)
	// At the threshold exactly: excluded, the comparison is strict
	testutil.CreateProcedure(t, db, "MT-501", 1_000_000, bulldozer.ID)
	// Expensive but wrong category: excluded
	testutil.CreateProcedure(t, db, "MT-502", 2_000_000, compactor.ID)

	rows, err := repo.ExpensiveHeavyProcedures(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MT-500", rows[0].Code)
	assert.Equal(t, "Bulldozer", rows[0].MachineryType)
	assert.Equal(t, "Heavy machinery", rows[0].Category)
}

func TestReportRepository_CompanyWithMostRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	busy := testutil.CreateCompany(t, db, "Construcciones Andinas")
	quiet := testutil.CreateCompany(t, db, "Obras del Sur")

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	testutil.CreateRequest(t, db, busy.ID, "SOL-001", date)
	testutil.CreateRequest(t, db, busy.ID, "SOL-002", date)
	testutil.CreateRequest(t, db, quiet.ID, "SOL-003", date)

	row, err := repo.CompanyWithMostRequests(ctx)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, busy.ID, row.ID)
	assert.Equal(t, 2, row.TotalRequests)
}

func TestReportRepository_CompanyWithMostRequests_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)

	row, err := repo.CompanyWithMostRequests(context.Background())
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestReportRepository_ArgosMachineQuantity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	argos := testutil.CreateCompany(t, db, "Cementos ARGOS S.A.")
	other := testutil.CreateCompany(t, db, "Obras del Sur")

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	proc := testutil.CreateProcedure(t, db, "MT-600", 100000, mt.ID)

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	argosReq := testutil.CreateRequest(t, db, argos.ID, "SOL-010", date)
	otherReq := testutil.CreateRequest(t, db, other.ID, "SOL-011", date)

	testutil.CreateRequestItem(t, db, argosReq.ID, proc.ID, 3, 300000)
	testutil.CreateRequestItem(t, db, argosReq.ID, proc.ID, 4, 400000)
	testutil.CreateRequestItem(t, db, otherReq.ID, proc.ID, 9, 900000)

	total, err := repo.ArgosMachineQuantity(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestReportRepository_ArgosMachineQuantity_NoMatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)

	total, err := repo.ArgosMachineQuantity(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestReportRepository_RequestsAssignedToEmployee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	target := testutil.CreateEmployeeWithDocument(t, db, repository.AssignedEmployeeDocumentID)
	other := testutil.CreateEmployee(t, db, "Pedro", "Nieto")

	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assigned := testutil.CreateRequest(t, db, company.ID, "SOL-020", date)
	unassigned := testutil.CreateRequest(t, db, company.ID, "SOL-021", date)

	testutil.CreateAssignment(t, db, assigned.ID, target.ID)
	testutil.CreateAssignment(t, db, unassigned.ID, other.ID)

	reqs, err := repo.RequestsAssignedToEmployee(ctx, repository.AssignedEmployeeDocumentID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "SOL-020", reqs[0].Code)
	require.Len(t, reqs[0].Assignments, 1)
	require.NotNil(t, reqs[0].Assignments[0].Employee)
	assert.Equal(t, repository.AssignedEmployeeDocumentID, reqs[0].Assignments[0].Employee.DocumentID)
}

func TestReportRepository_RepresentativesOfIdleCompanies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	idle := testutil.CreateCompany(t, db, "Obras del Sur")
	active := testutil.CreateCompany(t, db, "Construcciones Andinas")
	idleRep := testutil.CreateRepresentative(t, db, idle.ID)
	testutil.CreateRepresentative(t, db, active.ID)

	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	testutil.CreateRequest(t, db, active.ID, "SOL-030", date)

	rows, err := repo.RepresentativesOfIdleCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, idleRep.Email, rows[0].Email)
	assert.Equal(t, "Obras del Sur", rows[0].Company)
}

func TestReportRepository_RequestItemsFlat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	proc := testutil.CreateProcedure(t, db, "MT-700", 200000, mt.ID)

	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	req := testutil.CreateRequest(t, db, company.ID, "SOL-040", date)
	testutil.CreateRequestItem(t, db, req.ID, proc.ID, 2, 400000)

	rows, err := repo.RequestItemsFlat(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Construcciones Andinas", rows[0].Company)
	assert.Equal(t, "SOL-040", rows[0].RequestCode)
	assert.Equal(t, 2, rows[0].Quantity)
	assert.InDelta(t, 400000, rows[0].TotalCost, 0.001)
}

func TestReportRepository_BackhoeItemCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	backhoe := testutil.CreateMachineryType(t, db, "Retroexcavadora CAT", category.ID)
	crane := testutil.CreateMachineryType(t, db, "Grúa", category.ID)
	backhoeProc := testutil.CreateProcedure(t, db, "MT-800", 100000, backhoe.ID)
	craneProc := testutil.CreateProcedure(t, db, "MT-801", 100000, crane.ID)

	date := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	req := testutil.CreateRequest(t, db, company.ID, "SOL-050", date)
	testutil.CreateRequestItem(t, db, req.ID, backhoeProc.ID, 1, 100000)
	testutil.CreateRequestItem(t, db, req.ID, backhoeProc.ID, 2, 200000)
	testutil.CreateRequestItem(t, db, req.ID, craneProc.ID, 1, 100000)

	count, err := repo.BackhoeItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestReportRepository_RequestsOfOctober2023(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	proc := testutil.CreateProcedure(t, db, "MT-900", 100000, mt.ID)

	october := testutil.CreateRequest(t, db, company.ID, "SOL-060",
		time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC))
	november := testutil.CreateRequest(t, db, company.ID, "SOL-061",
		time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC))
	octoberOtherYear := testutil.CreateRequest(t, db, company.ID, "SOL-062",
		time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC))

	testutil.CreateRequestItem(t, db, october.ID, proc.ID, 5, 500000)
	testutil.CreateRequestItem(t, db, november.ID, proc.ID, 1, 100000)
	testutil.CreateRequestItem(t, db, octoberOtherYear.ID, proc.ID, 1, 100000)

	rows, err := repo.RequestsOfOctober2023(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SOL-060", rows[0].RequestCode)
	assert.Equal(t, "Excavadora", rows[0].MachineryType)
	assert.Equal(t, 5, rows[0].Quantity)
}

func TestReportRepository_TopCompaniesByRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewReportRepository(db)
	ctx := context.Background()

	first := testutil.CreateCompany(t, db, "Construcciones Andinas")
	second := testutil.CreateCompany(t, db, "Obras del Sur")
	testutil.CreateCompany(t, db, "Sin Solicitudes SAS")

	date := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	testutil.CreateRequest(t, db, first.ID, "SOL-070", date)
	testutil.CreateRequest(t, db, first.ID, "SOL-071", date)
	testutil.CreateRequest(t, db, second.ID, "SOL-072", date)

	rows, err := repo.TopCompaniesByRequests(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, int64(2), rows[0].TotalRequests)
	assert.Equal(t, second.ID, rows[1].ID)
}

// The request cascade removes line-items and assignments with the request.
func TestRequestDeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	proc := testutil.CreateProcedure(t, db, "MT-950", 100000, mt.ID)
	employee := testutil.CreateEmployee(t, db, "Laura", "Rojas")

	date := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	req := testutil.CreateRequest(t, db, company.ID, "SOL-080", date)
	testutil.CreateRequestItem(t, db, req.ID, proc.ID, 1, 100000)
	testutil.CreateAssignment(t, db, req.ID, employee.ID)

	require.NoError(t, db.Delete(&domain.MaintenanceRequest{}, req.ID).Error)

	var items, assignments int64
	require.NoError(t, db.Model(&domain.RequestItem{}).Where("request_id = ?", req.ID).Count(&items).Error)
	require.NoError(t, db.Model(&domain.RequestAssignment{}).Where("request_id = ?", req.ID).Count(&assignments).Error)
	assert.Zero(t, items)
	assert.Zero(t, assignments)
}
