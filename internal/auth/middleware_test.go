package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/auth"
	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupMiddleware(t *testing.T) (*auth.Middleware, *auth.TokenManager, *repository.UserRepository, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewTokenManager("clave-de-prueba", "maintenance-api", time.Hour)
	return auth.NewMiddleware(tokens, userRepo, zap.NewNop()), tokens, userRepo, db
}

// issueLiveToken signs a token and persists its backing row
func issueLiveToken(t *testing.T, db *gorm.DB, tokens *auth.TokenManager, userRepo *repository.UserRepository) (string, string) {
	t.Helper()
	user := testutil.CreateUser(t, db, "ana@example.com", "hash")
	issued, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NoError(t, userRepo.CreateToken(context.Background(), &domain.AccessToken{
		TokenID:   issued.TokenID,
		UserID:    user.ID,
		ExpiresAt: issued.ExpiresAt,
	}))
	return issued.Token, issued.TokenID
}

func TestMiddleware_Authenticate_ValidToken(t *testing.T) {
	mw, tokens, userRepo, db := setupMiddleware(t)
	token, _ := issueLiveToken(t, db, tokens, userRepo)

	var principal *auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "ana@example.com", principal.Email)
	assert.NotZero(t, principal.UserID)
}

func TestMiddleware_Authenticate_MissingHeader(t *testing.T) {
	mw, _, _, _ := setupMiddleware(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No autenticado")
}

func TestMiddleware_Authenticate_RevokedToken(t *testing.T) {
	mw, tokens, userRepo, db := setupMiddleware(t)
	token, tokenID := issueLiveToken(t, db, tokens, userRepo)

	require.NoError(t, userRepo.RevokeToken(context.Background(), tokenID, time.Now()))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_Authenticate_TokenWithoutRow(t *testing.T) {
	mw, tokens, _, db := setupMiddleware(t)

	// Signed but never persisted: logout or purge already removed the row
	user := testutil.CreateUser(t, db, "ana@example.com", "hash")
	issued, err := tokens.Issue(user)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	rec := httptest.NewRecorder()

	mw.Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddleware_RequireRole(t *testing.T) {
	mw, _, _, _ := setupMiddleware(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := mw.RequireRole(domain.RoleAdmin)(next)

	adminCtx := auth.WithPrincipal(context.Background(), &auth.Principal{
		UserID: 1, Role: domain.RoleAdmin,
	})
	req := httptest.NewRequest(http.MethodGet, "/api/empresas", nil).WithContext(adminCtx)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	employeeCtx := auth.WithPrincipal(context.Background(), &auth.Principal{
		UserID: 2, Role: domain.RoleEmployee,
	})
	req = httptest.NewRequest(http.MethodGet, "/api/empresas", nil).WithContext(employeeCtx)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "No autorizado")
}
