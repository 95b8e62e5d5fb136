package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/auth"
	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/tecnimaq/maintenance-api/internal/mapper"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/validation"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration and the token lifecycle. Passwords
// are stored as bcrypt hashes; every issued token is persisted by jti so
// logout can revoke it before expiry.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an account and signs it in
func (s *AuthService) Register(ctx context.Context, input *domain.RegisterInput) (*domain.AuthResult, error) {
	ve := validation.Struct(input)
	if ve == nil {
		ve = domain.NewValidationError()
	}

	if input.Email != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, input.Email, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			ve.Add("email", "Ya existe un usuario con este correo")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.Role(input.Role),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, &domain.ConflictError{Message: "Ya existe un usuario con este correo"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.Uint("id", user.ID), zap.String("email", user.Email))

	return s.issueFor(ctx, user)
}

// Login verifies credentials and issues a token. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input *domain.LoginInput) (*domain.AuthResult, error) {
	if ve := validation.Struct(input); ve != nil {
		return nil, ve
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", zap.Uint("id", user.ID))

	return s.issueFor(ctx, user)
}

func (s *AuthService) issueFor(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	issued, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	record := &domain.AccessToken{
		TokenID:   issued.TokenID,
		UserID:    user.ID,
		ExpiresAt: issued.ExpiresAt,
	}
	if err := s.userRepo.CreateToken(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}

	return &domain.AuthResult{
		User:      mapper.ToUserDTO(user),
		Token:     issued.Token,
		TokenType: "Bearer",
	}, nil
}

// Logout revokes the caller's token
func (s *AuthService) Logout(ctx context.Context, tokenID string) error {
	if err := s.userRepo.RevokeToken(ctx, tokenID, time.Now()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("token revoked", zap.String("tokenId", tokenID))
	return nil
}

// Me returns the account of the authenticated caller
func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, &domain.AuthError{Message: "No autenticado"}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// PurgeExpiredTokens deletes token rows whose expiry is already past. It backs
// the periodic cleanup job.
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.userRepo.DeleteExpiredTokens(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	if n > 0 {
		s.logger.Info("expired tokens purged", zap.Int64("count", n))
	}
	return n, nil
}
