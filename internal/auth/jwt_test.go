package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/auth"
	"github.com/tecnimaq/maintenance-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	user := &domain.User{
		Name:  "Ana García",
		Email: "ana@example.com",
		Role:  domain.RoleAdmin,
	}
	user.ID = 42
	return user
}

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := auth.NewTokenManager("clave-de-prueba", "maintenance-api", time.Hour)

	issued, err := m.Issue(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := m.Parse(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.TokenID, claims.ID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestTokenManager_Parse_Expired(t *testing.T) {
	m := auth.NewTokenManager("clave-de-prueba", "maintenance-api", -time.Minute)

	issued, err := m.Issue(testUser())
	require.NoError(t, err)

	_, err = m.Parse(issued.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrExpiredToken))
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	m := auth.NewTokenManager("clave-de-prueba", "maintenance-api", time.Hour)
	other := auth.NewTokenManager("otra-clave", "maintenance-api", time.Hour)

	issued, err := m.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Parse(issued.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestTokenManager_Parse_WrongIssuer(t *testing.T) {
	m := auth.NewTokenManager("clave-de-prueba", "maintenance-api", time.Hour)
	other := auth.NewTokenManager("clave-de-prueba", "otro-servicio", time.Hour)

	issued, err := m.Issue(testUser())
	require.NoError(t, err)

	_, err = other.Parse(issued.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}

func TestTokenManager_Parse_Garbage(t *testing.T) {
	m := auth.NewTokenManager("clave-de-prueba", "maintenance-api", time.Hour)

	_, err := m.Parse("no-es-un-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, auth.ErrInvalidToken))
}
