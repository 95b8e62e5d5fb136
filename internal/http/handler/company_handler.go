package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, companies)
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateCompanyInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	company, err := h.companyService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, company)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	company, err := h.companyService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, company)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	var input domain.UpdateCompanyInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	company, err := h.companyService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.companyService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Empresa eliminada")
}
