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

func createCompanyService(db *gorm.DB) *service.CompanyService {
	return service.NewCompanyService(repository.NewCompanyRepository(db), zap.NewNop())
}

func TestCompanyService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCompanyService(db)
	ctx := context.Background()

	dto, err := svc.Create(ctx, &domain.CreateCompanyInput{
		Name:    "Construcciones Andinas",
		TaxID:   "900123456",
		Address: "Calle 1 # 2-3",
		Phone:   "6015551234",
		Email:   "contacto@andinas.com",
		City:    "Bogotá",
	})
	require.NoError(t, err)
	assert.Equal(t, "Construcciones Andinas", dto.Name)
	assert.Equal(t, "900123456", dto.TaxID)
	assert.NotZero(t, dto.ID)
}

func TestCompanyService_Create_DuplicateTaxIDAndEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCompanyService(db)
	ctx := context.Background()

	existing := testutil.CreateCompany(t, db, "Construcciones Andinas")

	_, err := svc.Create(ctx, &domain.CreateCompanyInput{
		Name:    "Otra Empresa",
		TaxID:   existing.TaxID,
		Address: "Calle 9 # 9-9",
		Phone:   "6015550000",
		Email:   existing.Email,
	})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "nit")
	require.Contains(t, ve.Fields, "correo")
	assert.Equal(t, "Ya existe una empresa con este NIT", ve.Fields["nit"][0])
	assert.Equal(t, "Ya existe una empresa con este correo", ve.Fields["correo"][0])
}

func TestCompanyService_Update_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCompanyService(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")

	city := "Medellín"
	dto, err := svc.Update(ctx, company.ID, &domain.UpdateCompanyInput{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Medellín", dto.City)
	assert.Equal(t, company.Name, dto.Name)
	assert.Equal(t, company.TaxID, dto.TaxID)
}

func TestCompanyService_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCompanyService(db)

	_, err := svc.GetByID(context.Background(), 99999)
	require.Error(t, err)

	nfe, ok := domain.AsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Empresa no encontrada", nfe.Message)
}

func TestCompanyService_Delete_CascadesRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createCompanyService(db)
	ctx := context.Background()

	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	testutil.CreateRepresentative(t, db, company.ID)

	require.NoError(t, svc.Delete(ctx, company.ID))

	var reps int64
	require.NoError(t, db.Model(&domain.Representative{}).
		Where("company_id = ?", company.ID).Count(&reps).Error)
	assert.Zero(t, reps)
}
