package handler

import (
	"net/http"

	"github.com/tecnimaq/maintenance-api/internal/auth"
	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login and the session endpoints
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.RegisterInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	result, err := h.authService.Register(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.LoginInput
	if err := decodeBody(r, &input); err != nil {
		respondBadRequest(w, invalidBodyMessage)
		return
	}

	result, err := h.authService.Login(r.Context(), &input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, h.logger, &domain.AuthError{Message: "No autenticado"})
		return
	}

	if err := h.authService.Logout(r.Context(), principal.TokenID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondMessage(w, http.StatusOK, "Sesión cerrada")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, h.logger, &domain.AuthError{Message: "No autenticado"})
		return
	}

	user, err := h.authService.Me(r.Context(), principal.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondData(w, http.StatusOK, user)
}
