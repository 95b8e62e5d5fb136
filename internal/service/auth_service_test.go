package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/auth"
	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"github.com/tecnimaq/maintenance-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func createAuthService(db *gorm.DB) (*service.AuthService, *repository.UserRepository, *auth.TokenManager) {
	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewTokenManager("clave-de-prueba", "maintenance-api", time.Hour)
	return service.NewAuthService(userRepo, tokens, zap.NewNop()), userRepo, tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, tokens := createAuthService(db)
	ctx := context.Background()

	result, err := svc.Register(ctx, &domain.RegisterInput{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "secreto123",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)

	claims, err := tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	login, err := svc.Login(ctx, &domain.LoginInput{
		Email:    "ana@example.com",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, _ := createAuthService(db)
	ctx := context.Background()

	input := &domain.RegisterInput{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "secreto123",
		Role:     "employee",
	}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, ve.Fields, "email")
	assert.Equal(t, "Ya existe un usuario con este correo", ve.Fields["email"][0])
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, _ := createAuthService(db)

	_, err := svc.Register(context.Background(), &domain.RegisterInput{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "corta",
		Role:     "employee",
	})
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "password")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, _ := createAuthService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.RegisterInput{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "secreto123",
		Role:     "employee",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &domain.LoginInput{
		Email:    "ana@example.com",
		Password: "equivocada",
	})
	require.Error(t, err)

	ae, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, "Credenciales inválidas", ae.Message)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _, _ := createAuthService(db)

	_, err := svc.Login(context.Background(), &domain.LoginInput{
		Email:    "nadie@example.com",
		Password: "loquesea",
	})
	require.Error(t, err)
	_, ok := domain.AsAuthError(err)
	assert.True(t, ok)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, userRepo, tokens := createAuthService(db)
	ctx := context.Background()

	result, err := svc.Register(ctx, &domain.RegisterInput{
		Name:     "Ana García",
		Email:    "ana@example.com",
		Password: "secreto123",
		Role:     "employee",
	})
	require.NoError(t, err)

	claims, err := tokens.Parse(result.Token)
	require.NoError(t, err)

	record, err := userRepo.GetToken(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, record.Active(time.Now()))

	require.NoError(t, svc.Logout(ctx, claims.ID))

	record, err = userRepo.GetToken(ctx, claims.ID)
	require.NoError(t, err)
	assert.False(t, record.Active(time.Now()))
}

func TestAuthService_PurgeExpiredTokens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, userRepo, _ := createAuthService(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "ana@example.com", "$2a$10$hashhashhashhashhashha")

	expired := &domain.AccessToken{
		TokenID:   "expirado-1",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	live := &domain.AccessToken{
		TokenID:   "vigente-1",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, userRepo.CreateToken(ctx, expired))
	require.NoError(t, userRepo.CreateToken(ctx, live))

	removed, err := svc.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = userRepo.GetToken(ctx, "vigente-1")
	assert.NoError(t, err)
}
