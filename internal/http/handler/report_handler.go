package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// ReportHandler exposes the canned business queries under /consultas
type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

func (h *ReportHandler) EmployeesByLastName(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.EmployeesByLastName(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

func (h *ReportHandler) ExpensiveHeavyProcedures(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.ExpensiveHeavyProcedures(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

func (h *ReportHandler) CompanyWithMostRequests(w http.ResponseWriter, r *http.Request) {
	row, err := h.reportService.CompanyWithMostRequests(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, row)
}

func (h *ReportHandler) ArgosMachineQuantity(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.ArgosMachineQuantity(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func (h *ReportHandler) RequestsOfAssignedEmployee(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.RequestsOfAssignedEmployee(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

func (h *ReportHandler) RepresentativesOfIdleCompanies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.RepresentativesOfIdleCompanies(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

func (h *ReportHandler) RequestItemsFlat(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.RequestItemsFlat(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

func (h *ReportHandler) RequestByCode(w http.ResponseWriter, r *http.Request) {
	var input domain.RequestByCodeInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	result, err := h.reportService.RequestByCode(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func (h *ReportHandler) BackhoeItemCount(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.BackhoeItemCount(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, result)
}

func (h *ReportHandler) RequestsOfOctober2023(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reportService.RequestsOfOctober2023(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}
