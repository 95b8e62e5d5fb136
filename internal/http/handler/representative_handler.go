package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// RepresentativeHandler handles company representative endpoints
type RepresentativeHandler struct {
	repService *service.RepresentativeService
	logger     *zap.Logger
}

func NewRepresentativeHandler(repService *service.RepresentativeService, logger *zap.Logger) *RepresentativeHandler {
	return &RepresentativeHandler{
		repService: repService,
		logger:     logger,
	}
}

func (h *RepresentativeHandler) List(w http.ResponseWriter, r *http.Request) {
	reps, err := h.repService.List(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, reps)
}

func (h *RepresentativeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateRepresentativeInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	rep, err := h.repService.Create(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusCreated, rep)
}

func (h *RepresentativeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	rep, err := h.repService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rep)
}

func (h *RepresentativeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	var input domain.UpdateRepresentativeInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	rep, err := h.repService.Update(r.Context(), id, &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondData(w, http.StatusOK, rep)
}

func (h *RepresentativeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondBadRequest(w, invalidIDMessage)
		return
	}

	if err := h.repService.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "Representante eliminado")
}
