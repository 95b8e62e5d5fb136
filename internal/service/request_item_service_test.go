package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
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

// fakeStorage keeps blobs in memory and records deletions
type fakeStorage struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, prefix, filename, contentType string, data io.Reader) (string, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, err := io.ReadAll(data)
	if err != nil {
		return "", 0, err
	}
	path := prefix + "/" + filename
	f.blobs[path] = content
	return path, int64(len(content)), nil
}

func (f *fakeStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	content, ok := f.blobs[storagePath]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", storagePath)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, storagePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, storagePath)
	f.deleted = append(f.deleted, storagePath)
	return nil
}

func (f *fakeStorage) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.blobs[path]
	return ok
}

// put seeds a blob as if the handler had uploaded it
func (f *fakeStorage) put(path string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[path] = content
}

func createItemService(db *gorm.DB, store *fakeStorage) *service.RequestItemService {
	itemRepo := repository.NewRequestItemRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	procedureRepo := repository.NewProcedureRepository(db)
	return service.NewRequestItemService(itemRepo, requestRepo, procedureRepo, store, zap.NewNop())
}

type itemFixture struct {
	request   *domain.MaintenanceRequest
	procedure *domain.MaintenanceProcedure
	cheap     *domain.MaintenanceProcedure
}

func setupItemFixture(t *testing.T, db *gorm.DB) itemFixture {
	company := testutil.CreateCompany(t, db, "Construcciones Andinas")
	category := testutil.CreateCategory(t, db, "Maquinaria pesada")
	mt := testutil.CreateMachineryType(t, db, "Excavadora", category.ID)
	return itemFixture{
		request: testutil.CreateRequest(t, db, company.ID, "SOL-200",
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
		procedure: testutil.CreateProcedure(t, db, "MT-210", 500000, mt.ID),
		cheap:     testutil.CreateProcedure(t, db, "MT-211", 100000, mt.ID),
	}
}

func TestRequestItemService_Create_DerivesTotalCost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	fx := setupItemFixture(t, db)
	ctx := context.Background()

	photo := fmt.Sprintf("solicitudes/%d/foto.jpg", fx.request.ID)
	store.put(photo, []byte("img"))

	dto, err := svc.Create(ctx, &domain.CreateRequestItemInput{
		RequestID:   fx.request.ID,
		ProcedureID: fx.procedure.ID,
		Quantity:    3,
		PhotoPath:   photo,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1_500_000, dto.TotalCost, 0.001)
	assert.Equal(t, photo, dto.PhotoPath)
	assert.True(t, store.has(photo))
}

func TestRequestItemService_Create_MissingProcedureReclaimsBlob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	fx := setupItemFixture(t, db)
	ctx := context.Background()

	photo := fmt.Sprintf("solicitudes/%d/huerfana.jpg", fx.request.ID)
	store.put(photo, []byte("img"))

	_, err := svc.Create(ctx, &domain.CreateRequestItemInput{
		RequestID:   fx.request.ID,
		ProcedureID: 99999,
		Quantity:    1,
		PhotoPath:   photo,
	})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "mantenimientoId")
	assert.False(t, store.has(photo), "rejected create must reclaim the uploaded blob")
}

func TestRequestItemService_Create_ValidationBatchesAllFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.CreateRequestItemInput{})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "solicitudId")
	assert.Contains(t, ve.Fields, "mantenimientoId")
	assert.Contains(t, ve.Fields, "cantidadMaquinas")
	assert.Contains(t, ve.Fields, "foto")
}

func TestRequestItemService_Update_RecomputesCostOnQuantityChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	fx := setupItemFixture(t, db)
	ctx := context.Background()

	item := testutil.CreateRequestItem(t, db, fx.request.ID, fx.procedure.ID, 3, 1_500_000)

	quantity := 5
	dto, err := svc.Update(ctx, item.ID, &domain.UpdateRequestItemInput{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 5, dto.Quantity)
	assert.InDelta(t, 2_500_000, dto.TotalCost, 0.001)
}

func TestRequestItemService_Update_RecomputesCostOnProcedureChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	fx := setupItemFixture(t, db)
	ctx := context.Background()

	item := testutil.CreateRequestItem(t, db, fx.request.ID, fx.procedure.ID, 3, 1_500_000)

	dto, err := svc.Update(ctx, item.ID, &domain.UpdateRequestItemInput{ProcedureID: &fx.cheap.ID})
	require.NoError(t, err)
	assert.Equal(t, fx.cheap.ID, dto.ProcedureID)
	assert.InDelta(t, 300_000, dto.TotalCost, 0.001)
}

func TestRequestItemService_Update_PhotoOnlyLeavesCostUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	fx := setupItemFixture(t, db)
	ctx := context.Background()

	item := testutil.CreateRequestItem(t, db, fx.request.ID, fx.procedure.ID, 3, 1_500_000)
	oldPhoto := item.PhotoPath
	store.put(oldPhoto, []byte("old"))

	newPhoto := fmt.Sprintf("solicitudes/%d/nueva.jpg", fx.request.ID)
	store.put(newPhoto, []byte("new"))

	dto, err := svc.Update(ctx, item.ID, &domain.UpdateRequestItemInput{PhotoPath: &newPhoto})
	require.NoError(t, err)
	assert.InDelta(t, 1_500_000, dto.TotalCost, 0.001)
	assert.Equal(t, newPhoto, dto.PhotoPath)
	assert.False(t, store.has(oldPhoto), "replaced photo must be reclaimed")
	assert.True(t, store.has(newPhoto))
}

func TestRequestItemService_Update_NotFoundReclaimsNewBlob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	ctx := context.Background()

	photo := "solicitudes/1/perdida.jpg"
	store.put(photo, []byte("img"))

	_, err := svc.Update(ctx, 99999, &domain.UpdateRequestItemInput{PhotoPath: &photo})
	require.Error(t, err)

	nfe, ok := domain.AsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Detalle de solicitud no encontrado", nfe.Message)
	assert.False(t, store.has(photo))
}

func TestRequestItemService_Delete_RemovesRecordAndBlob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	fx := setupItemFixture(t, db)
	ctx := context.Background()

	item := testutil.CreateRequestItem(t, db, fx.request.ID, fx.procedure.ID, 1, 500_000)
	store.put(item.PhotoPath, []byte("img"))

	require.NoError(t, svc.Delete(ctx, item.ID))

	_, err := svc.GetByID(ctx, item.ID)
	require.Error(t, err)
	_, ok := domain.AsNotFoundError(err)
	assert.True(t, ok)
	assert.False(t, store.has(item.PhotoPath))
}

func TestRequestItemService_DownloadPhoto(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newFakeStorage()
	svc := createItemService(db, store)
	fx := setupItemFixture(t, db)
	ctx := context.Background()

	item := testutil.CreateRequestItem(t, db, fx.request.ID, fx.procedure.ID, 1, 500_000)
	store.put(item.PhotoPath, []byte("contenido"))

	reader, path, err := svc.DownloadPhoto(ctx, item.ID)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []byte("contenido"), content)
	assert.Equal(t, item.PhotoPath, path)
}
