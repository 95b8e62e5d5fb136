package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler exposes the aggregate overview endpoints
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

func (h *DashboardHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.dashboardService.Totals(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, totals)
}

func (h *DashboardHandler) RequestsByStatus(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboardService.RequestsByStatus(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}

func (h *DashboardHandler) TopCompanies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.dashboardService.TopCompanies(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rows)
}
