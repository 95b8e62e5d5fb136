package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// CategoryHandler handles machinery category endpoints
type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateCategoryInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	category, err := h.categoryService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	category, err := h.categoryService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	var input domain.UpdateCategoryInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	category, err := h.categoryService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Categoría eliminada")
}
