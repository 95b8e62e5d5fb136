package service

import (
	"context"
	"fmt"
	"io"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/mapper"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/storage"
	"github.com/tecnimaq/maintenance-api/internal/validation"
	"go.uber.org/zap"
)

// RequestItemService manages request line-items. Every item owns one photo
// blob: the handler uploads it before calling Create/Update and the service
// reclaims it when the item is removed or the photo replaced. TotalCost is
// never accepted from the caller, it is always procedure cost times quantity.
type RequestItemService struct {
	itemRepo      *repository.RequestItemRepository
	requestRepo   *repository.RequestRepository
	procedureRepo *repository.ProcedureRepository
	store         storage.Storage
	logger        *zap.Logger
}

func NewRequestItemService(
	itemRepo *repository.RequestItemRepository,
	requestRepo *repository.RequestRepository,
	procedureRepo *repository.ProcedureRepository,
	store storage.Storage,
	logger *zap.Logger,
) *RequestItemService {
	return &RequestItemService{
		itemRepo:      itemRepo,
		requestRepo:   requestRepo,
		procedureRepo: procedureRepo,
		store:         store,
		logger:        logger,
	}
}

// removeBlob deletes a photo blob best-effort. Blob-store trouble is logged
// and swallowed so the database operation it follows is never rolled back.
func (s *RequestItemService) removeBlob(ctx context.Context, storagePath string) {
	if storagePath == "" {
		return
	}
	if err := s.store.Delete(ctx, storagePath); err != nil {
		s.logger.Warn("failed to delete photo blob",
			zap.String("path", storagePath),
			zap.Error(err))
	}
}

func (s *RequestItemService) List(ctx context.Context) ([]domain.RequestItemDTO, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list request items: %w", err)
	}

	dtos := make([]domain.RequestItemDTO, len(items))
	for i := range items {
		dtos[i] = mapper.ToRequestItemDTO(&items[i])
	}
	return dtos, nil
}

// Create validates the item and derives its total cost from the referenced
// procedure. input.PhotoPath is the already-uploaded blob locator; when the
// item is rejected the orphaned blob is reclaimed before returning.
func (s *RequestItemService) Create(ctx context.Context, input *domain.CreateRequestItemInput) (*domain.RequestItemDTO, error) {
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

	var proc *domain.MaintenanceProcedure
	if input.ProcedureID != 0 {
		var err error
		proc, err = s.procedureRepo.GetByID(ctx, input.ProcedureID)
		if err != nil {
			if repository.IsNotFound(err) {
				ve.Add("mantenimientoId", "El mantenimiento seleccionado no existe")
			} else {
				return nil, fmt.Errorf("failed to check procedure: %w", err)
			}
		}
	}

	if ve.HasErrors() {
		s.removeBlob(ctx, input.PhotoPath)
		return nil, ve
	}

	item := &domain.RequestItem{
		RequestID:   input.RequestID,
		ProcedureID: input.ProcedureID,
		Quantity:    input.Quantity,
		TotalCost:   proc.Cost * float64(input.Quantity),
		PhotoPath:   input.PhotoPath,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.removeBlob(ctx, input.PhotoPath)
		return nil, fmt.Errorf("failed to create request item: %w", err)
	}

	s.logger.Info("request item created",
		zap.Uint("id", item.ID),
		zap.Uint("requestId", item.RequestID),
		zap.Uint("procedureId", item.ProcedureID),
		zap.Int("quantity", item.Quantity),
		zap.Float64("totalCost", item.TotalCost))

	created, err := s.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request item: %w", err)
	}
	dto := mapper.ToRequestItemDTO(created)
	return &dto, nil
}

func (s *RequestItemService) GetByID(ctx context.Context, id uint) (*domain.RequestItemDTO, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("request_item", "Detalle de solicitud no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get request item: %w", err)
	}

	dto := mapper.ToRequestItemDTO(item)
	return &dto, nil
}

// Update recomputes the total cost whenever quantity or the procedure
// reference changes. A replaced photo reclaims the previous blob only after
// the row is persisted.
func (s *RequestItemService) Update(ctx context.Context, id uint, input *domain.UpdateRequestItemInput) (*domain.RequestItemDTO, error) {
	cleanupNewBlob := func() {
		if input.PhotoPath != nil {
			s.removeBlob(ctx, *input.PhotoPath)
		}
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		cleanupNewBlob()
		if repository.IsNotFound(err) {
			return nil, domain.NewNotFoundError("request_item", "Detalle de solicitud no encontrado", id)
		}
		return nil, fmt.Errorf("failed to get request item: %w", err)
	}

	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	procedureID := item.ProcedureID
	if input.ProcedureID != nil {
		procedureID = *input.ProcedureID
	}
	quantity := item.Quantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	var proc *domain.MaintenanceProcedure
	if input.ProcedureID != nil || input.Quantity != nil {
		proc, err = s.procedureRepo.GetByID(ctx, procedureID)
		if err != nil {
			if repository.IsNotFound(err) {
				ve.Add("mantenimientoId", "El mantenimiento seleccionado no existe")
			} else {
				cleanupNewBlob()
				return nil, fmt.Errorf("failed to check procedure: %w", err)
			}
		}
	}

	if ve.HasErrors() {
		cleanupNewBlob()
		return nil, ve
	}

	oldPhoto := item.PhotoPath

	if input.ProcedureID != nil {
		item.ProcedureID = procedureID
		item.Procedure = nil
	}
	if input.Quantity != nil {
		item.Quantity = quantity
	}
	if proc != nil {
		item.TotalCost = proc.Cost * float64(quantity)
	}
	if input.PhotoPath != nil {
		item.PhotoPath = *input.PhotoPath
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		cleanupNewBlob()
		return nil, fmt.Errorf("failed to update request item: %w", err)
	}

	if input.PhotoPath != nil && oldPhoto != *input.PhotoPath {
		s.removeBlob(ctx, oldPhoto)
	}

	updated, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request item: %w", err)
	}
	dto := mapper.ToRequestItemDTO(updated)
	return &dto, nil
}

// Delete removes the item and then reclaims its photo blob
func (s *RequestItemService) Delete(ctx context.Context, id uint) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.NewNotFoundError("request_item", "Detalle de solicitud no encontrado", id)
		}
		return fmt.Errorf("failed to get request item: %w", err)
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete request item: %w", err)
	}

	s.removeBlob(ctx, item.PhotoPath)

	s.logger.Info("request item deleted", zap.Uint("id", id))
	return nil
}

// DownloadPhoto streams the stored machine photo of an item
func (s *RequestItemService) DownloadPhoto(ctx context.Context, id uint) (io.ReadCloser, string, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", domain.NewNotFoundError("request_item", "Detalle de solicitud no encontrado", id)
		}
		return nil, "", fmt.Errorf("failed to get request item: %w", err)
	}

	reader, err := s.store.Download(ctx, item.PhotoPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download photo: %w", err)
	}
	return reader, item.PhotoPath, nil
}
