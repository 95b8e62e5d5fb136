package service_test

import (
	"context"
	"testing"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"github.com/tecnimaq/maintenance-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createProcedureService(db *gorm.DB) *service.ProcedureService {
	procedureRepo := repository.NewProcedureRepository(db)
	typeRepo := repository.NewMachineryTypeRepository(db)
	return service.NewProcedureService(procedureRepo, typeRepo, zap.NewNop())
}

func floatPtr(v float64) *float64 { return &v }

func TestProcedureService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProcedureService(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)

	dto, err := svc.Create(ctx, &domain.CreateProcedureInput{
		Code:            "MT-001",
		Name:            "Cambio de aceite",
		Description:     "Cambio de aceite hidráulico",
		Cost:            floatPtr(350000),
		MachineryTypeID: mt.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "MT-001", dto.Code)
	assert.InDelta(t, 350000, dto.Cost, 0.001)
	require.NotNil(t, dto.MachineryType)
	assert.Equal(t, "Excavadora", dto.MachineryType.Name)
}

func TestProcedureService_Create_ValidationBatchesAllFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProcedureService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateProcedureInput{})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "codigo")
	assert.Contains(t, ve.Fields, "nombre")
	assert.Contains(t, ve.Fields, "descripcion")
	assert.Contains(t, ve.Fields, "costo")
	assert.Contains(t, ve.Fields, "tipoMaquinariaId")
}

func TestProcedureService_Create_DuplicateCodeSameType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProcedureService(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	testutil.CreateProcedure(t, db, "MT-002", 100000, mt.ID)

	_, err := svc.Create(ctx, &domain.CreateProcedureInput{
		Code:            "MT-002",
		Name:            "Duplicado",
		Description:     "Duplicado",
		Cost:            floatPtr(100000),
		MachineryTypeID: mt.ID,
	})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "codigo")
	assert.Equal(t,
		"Ya existe un mantenimiento con este código para este tipo de maquinaria",
		ve.Fields["codigo"][0])
}

func TestProcedureService_Create_SameCodeOtherTypeAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProcedureService(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	excavator := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	crane := testutil.CreateMachineryType(t, db, "Grúa", category.ID)
	testutil.CreateProcedure(t, db, "MT-003", 100000, excavator.ID)

	dto, err := svc.Create(ctx, &domain.CreateProcedureInput{
		Code:            "MT-003",
		Name:            "Engrase",
		Description:     "Engrase general",
		Cost:            floatPtr(80000),
		MachineryTypeID: crane.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "MT-003", dto.Code)
	assert.Equal(t, crane.ID, dto.MachineryTypeID)
}

func TestProcedureService_Update_MovingToTakenPairRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProcedureService(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	excavator := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	crane := testutil.CreateMachineryType(t, db, "Grúa", category.ID)
	testutil.CreateProcedure(t, db, "MT-004", 100000, excavator.ID)
	movable := testutil.CreateProcedure(t, db, "MT-004", 100000, crane.ID)

	// Moving the crane procedure under the excavator collides on (code, type)
	_, err := svc.Update(ctx, movable.ID, &domain.UpdateProcedureInput{
		MachineryTypeID: &excavator.ID,
	})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "codigo")
}

func TestProcedureService_Update_SamePairAccepted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProcedureService(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	proc := testutil.CreateProcedure(t, db, "MT-005", 100000, mt.ID)

	// Re-submitting its own code must not trip the duplicate check
	code := "MT-005"
	cost := 120000.0
	dto, err := svc.Update(ctx, proc.ID, &domain.UpdateProcedureInput{
		Code: &code,
		Cost: &cost,
	})
	require.NoError(t, err)
	assert.InDelta(t, 120000, dto.Cost, 0.001)
}

func TestProcedureService_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createProcedureService(db)

	_, err := svc.GetByID(context.Background(), 99999)
	require.Error(t, err)

	nfe, ok := domain.AsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Mantenimiento no encontrado", nfe.Message)
}
