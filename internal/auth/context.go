package auth

import (
	"context"

	"github.com/tecnimaq/maintenance-api/internal/domain"
)

type contextKey string

const principalKey contextKey = "auth.principal"

// Principal is the authenticated caller attached to the request context
type Principal struct {
	UserID  uint
	Name    string
	Email   string
	Role    domain.Role
	TokenID string
}

// WithPrincipal attaches the principal to the context
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext extracts the principal from the context
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}
