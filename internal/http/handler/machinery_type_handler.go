package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// MachineryTypeHandler handles machinery type endpoints
type MachineryTypeHandler struct {
	typeService *service.MachineryTypeService
	logger      *zap.Logger
}

func NewMachineryTypeHandler(typeService *service.MachineryTypeService, logger *zap.Logger) *MachineryTypeHandler {
	return &MachineryTypeHandler{
		typeService: typeService,
		logger:      logger,
	}
}

func (h *MachineryTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.typeService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, types)
}

func (h *MachineryTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateMachineryTypeInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	mt, err := h.typeService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, mt)
}

func (h *MachineryTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	mt, err := h.typeService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, mt)
}

func (h *MachineryTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	var input domain.UpdateMachineryTypeInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	mt, err := h.typeService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, mt)
}

func (h *MachineryTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.typeService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Tipo de maquinaria eliminado")
}
