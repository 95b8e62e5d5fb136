package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"github.com/tecnimaq/maintenance-api/internal/storage"
	"go.uber.org/zap"
)

// allowedPhotoExtensions is the accepted photo file set
var allowedPhotoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// RequestItemHandler handles request line-item endpoints. Create and update
// arrive as multipart forms carrying the machine photo; the handler stores
// the blob and hands the locator to the service.
type RequestItemHandler struct {
	itemService *service.RequestItemService
	store       storage.Storage
	maxUploadMB int64
	logger      *zap.Logger
}

func NewRequestItemHandler(itemService *service.RequestItemService, store storage.Storage, maxUploadMB int64, logger *zap.Logger) *RequestItemHandler {
	return &RequestItemHandler{
		itemService: itemService,
		store:       store,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

func (h *RequestItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

// formUint reads an unsigned integer form field, 0 when absent or malformed
func formUint(r *http.Request, field string) uint {
	v, err := strconv.ParseUint(r.FormValue(field), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}

// storePhoto validates the uploaded photo and writes it under the request's
// namespace, returning the blob locator
func (h *RequestItemHandler) storePhoto(r *http.Request, file multipart.File, header *multipart.FileHeader, requestID uint) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExtensions[ext] {
		return "", fmt.Errorf("unsupported photo extension %q", ext)
	}

	prefix := path.Join("solicitudes", strconv.FormatUint(uint64(requestID), 10))
	locator, _, err := h.store.Upload(r.Context(), prefix, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		return "", err
	}
	return locator, nil
}

func (h *RequestItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondJSON(w, http.StatusRequestEntityTooLarge, domain.APIResponse{
			Status:  false,
			Message: fmt.Sprintf("La foto supera el tamaño máximo de %dMB", h.maxUploadMB),
		})
		return
	}

	input := domain.CreateRequestItemInput{
		RequestID:   formUint(r, "solicitudId"),
		ProcedureID: formUint(r, "mantenimientoId"),
	}
	if qty, err := strconv.Atoi(r.FormValue("cantidadMaquinas")); err == nil {
		input.Quantity = qty
	}

	file, header, err := r.FormFile("foto")
	if err == nil {
		defer file.Close()
		locator, err := h.storePhoto(r, file, header, input.RequestID)
		if err != nil {
			h.logger.Warn("photo upload rejected", zap.Error(err))
			respondBadRequest(w, "La foto debe ser una imagen png, jpg, jpeg, gif o webp")
			return
		}
		input.PhotoPath = locator
	}

	item, err := h.itemService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, item)
}

func (h *RequestItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	item, err := h.itemService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

func (h *RequestItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)
	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondJSON(w, http.StatusRequestEntityTooLarge, domain.APIResponse{
			Status:  false,
			Message: fmt.Sprintf("La foto supera el tamaño máximo de %dMB", h.maxUploadMB),
		})
		return
	}

	var input domain.UpdateRequestItemInput
	if v := r.FormValue("mantenimientoId"); v != "" {
		if procID, err := strconv.ParseUint(v, 10, 64); err == nil {
			p := uint(procID)
			input.ProcedureID = &p
		}
	}
	if v := r.FormValue("cantidadMaquinas"); v != "" {
		if qty, err := strconv.Atoi(v); err == nil {
			input.Quantity = &qty
		}
	}

	file, header, err := r.FormFile("foto")
	if err == nil {
		defer file.Close()

		// The new photo goes into the same request namespace as the old one.
		current, err := h.itemService.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		locator, err := h.storePhoto(r, file, header, current.RequestID)
		if err != nil {
			h.logger.Warn("photo upload rejected", zap.Error(err))
			respondBadRequest(w, "La foto debe ser una imagen png, jpg, jpeg, gif o webp")
			return
		}
		input.PhotoPath = &locator
	}

	item, err := h.itemService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

func (h *RequestItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.itemService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Detalle de solicitud eliminado")
}

// DownloadPhoto streams the stored machine photo
func (h *RequestItemHandler) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	reader, photoPath, err := h.itemService.DownloadPhoto(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Disposition", "attachment; filename=\""+path.Base(photoPath)+"\"")
	w.Header().Set("Content-Type", "application/octet-stream")

	_, _ = io.Copy(w, reader)
}
