package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// ProcedureHandler handles maintenance procedure endpoints
type ProcedureHandler struct {
	procedureService *service.ProcedureService
	logger           *zap.Logger
}

func NewProcedureHandler(procedureService *service.ProcedureService, logger *zap.Logger) *ProcedureHandler {
	return &ProcedureHandler{
		procedureService: procedureService,
		logger:           logger,
	}
}

func (h *ProcedureHandler) List(w http.ResponseWriter, r *http.Request) {
	procs, err := h.procedureService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, procs)
}

func (h *ProcedureHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateProcedureInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	proc, err := h.procedureService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, proc)
}

func (h *ProcedureHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	proc, err := h.procedureService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, proc)
}

func (h *ProcedureHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	var input domain.UpdateProcedureInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	proc, err := h.procedureService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, proc)
}

func (h *ProcedureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.procedureService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Mantenimiento eliminado")
}
