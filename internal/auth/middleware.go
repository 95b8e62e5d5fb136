package auth

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"go.uber.org/zap"
)

// Middleware authenticates requests with bearer tokens. A token is accepted
// only when its signature verifies and its jti row is still active, so logout
// takes effect immediately.
type Middleware struct {
	tokens   *TokenManager
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

// NewMiddleware creates an authentication middleware
func NewMiddleware(tokens *TokenManager, userRepo *repository.UserRepository, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens:   tokens,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Authenticate rejects requests without a live bearer token
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.unauthorized(w)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.unauthorized(w)
			return
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			m.logger.Debug("token rejected",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			m.unauthorized(w)
			return
		}

		record, err := m.userRepo.GetToken(r.Context(), claims.ID)
		if err != nil {
			if !repository.IsNotFound(err) {
				m.logger.Error("token lookup failed", zap.Error(err))
			}
			m.unauthorized(w)
			return
		}
		if !record.Active(time.Now()) {
			m.unauthorized(w)
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			m.unauthorized(w)
			return
		}

		principal := &Principal{
			UserID:  uint(userID),
			Name:    claims.Name,
			Email:   claims.Email,
			Role:    claims.Role,
			TokenID: claims.ID,
		}

		ctx := WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a subtree to the listed roles
func (m *Middleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := FromContext(r.Context())
			if !ok {
				m.unauthorized(w)
				return
			}

			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(domain.APIResponse{
				Status:  false,
				Message: "No autorizado",
			})
		})
	}
}

func (m *Middleware) unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.APIResponse{
		Status:  false,
		Message: "No autenticado",
	})
}
