package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tecnimaq/maintenance-api/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims are the JWT claims carried by an issued bearer token. The ID
// (jti) maps to a persisted access-token row, so a token is only accepted
// while its row is alive and unrevoked.
type Claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssuedToken is the result of signing a new token
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager signs and parses HMAC bearer tokens
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a token manager. ttl bounds the lifetime of every
// issued token.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token for the user with a fresh jti
func (m *TokenManager) Issue(user *domain.User) (*IssuedToken, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	tokenID := uuid.New().String()

	claims := &Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    m.issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{
		Token:     signed,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates the signature and expiry of a token and returns its claims
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
