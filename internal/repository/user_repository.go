package repository

import (
	"context"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

// CreateToken persists the record backing an issued bearer token
func (r *UserRepository) CreateToken(ctx context.Context, token *domain.AccessToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetToken looks up a token record by its jti, with the owning user
func (r *UserRepository) GetToken(ctx context.Context, tokenID string) (*domain.AccessToken, error) {
	var token domain.AccessToken
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&token, "token_id = ?", tokenID).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// RevokeToken marks a token record revoked so it can no longer authenticate
func (r *UserRepository) RevokeToken(ctx context.Context, tokenID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.AccessToken{}).
		Where("token_id = ?", tokenID).
		Update("revoked_at", at).Error
}

// DeleteExpiredTokens removes token records past their expiry. Used by the
// periodic cleanup job; returns the number of rows removed.
func (r *UserRepository) DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&domain.AccessToken{})
	return res.RowsAffected, res.Error
}
