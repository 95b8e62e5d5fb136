package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// AssignmentHandler handles request-employee assignment endpoints
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	logger            *zap.Logger
}

func NewAssignmentHandler(assignmentService *service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateAssignmentInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	assignment, err := h.assignmentService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	assignment, err := h.assignmentService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	var input domain.UpdateAssignmentInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	assignment, err := h.assignmentService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.assignmentService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Asignación eliminada")
}
