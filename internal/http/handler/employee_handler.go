package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger,
	}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateEmployeeInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	employee, err := h.employeeService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, employee)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	employee, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	var input domain.UpdateEmployeeInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	employee, err := h.employeeService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Empleado eliminado")
}
