package repository_test

import (
	"context"
	"testing"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcedureRepository_CompositeUniqueness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProcedureRepository(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	excavator := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	crane := testutil.CreateMachineryType(t, db, "Grúa", category.ID)

	first := &domain.MaintenanceProcedure{
		Code:            "MT-100",
		Name:            "Cambio de aceite",
		Cost:            250000,
		MachineryTypeID: excavator.ID,
	}
	require.NoError(t, repo.Create(ctx, first))

	// Same code under a different machinery type is allowed
	other := &domain.MaintenanceProcedure{
		Code:            "MT-100",
		Name:            "Cambio de aceite",
		Cost:            300000,
		MachineryTypeID: crane.ID,
	}
	require.NoError(t, repo.Create(ctx, other))

	// Same (code, type) pair hits the composite unique index
	dup := &domain.MaintenanceProcedure{
		Code:            "MT-100",
		Name:            "Duplicado",
		Cost:            100000,
		MachineryTypeID: excavator.ID,
	}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, repository.IsUniqueViolation(err))
}

func TestProcedureRepository_ExistsByCodeAndType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProcedureRepository(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	excavator := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	crane := testutil.CreateMachineryType(t, db, "Grúa", category.ID)
	proc := testutil.CreateProcedure(t, db, "MT-200", 500000, excavator.ID)

	exists, err := repo.ExistsByCodeAndType(ctx, "MT-200", excavator.ID, 0)
	require.NoError(t, err)
	assert.True(t, exists)

	// Excluding the record itself reports no duplicate
	exists, err = repo.ExistsByCodeAndType(ctx, "MT-200", excavator.ID, proc.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// Same code under another type is not a hit
	exists, err = repo.ExistsByCodeAndType(ctx, "MT-200", crane.ID, 0)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProcedureRepository_CodeExistsUnderOtherType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProcedureRepository(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	excavator := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	crane := testutil.CreateMachineryType(t, db, "Grúa", category.ID)
	testutil.CreateProcedure(t, db, "MT-300", 400000, excavator.ID)

	exists, err := repo.CodeExistsUnderOtherType(ctx, "MT-300", crane.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CodeExistsUnderOtherType(ctx, "MT-300", excavator.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProcedureRepository_DeleteCascadesFromType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProcedureRepository(db)
	ctx := context.Background()

	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	excavator := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	proc := testutil.CreateProcedure(t, db, "MT-400", 400000, excavator.ID)

	require.NoError(t, db.Delete(&domain.MachineryType{}, excavator.ID).Error)

	_, err := repo.GetByID(ctx, proc.ID)
	require.Error(t, err)
	assert.True(t, repository.IsNotFound(err))
}
