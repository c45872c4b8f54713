package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated caller of a request. A nil *Principal means anonymous.
type Principal struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool

	TokenID        string
	TokenExpiresAt time.Time
}

// Is reports whether the principal is the given user.
func (p *Principal) Is(userID uuid.UUID) bool {
	return p != nil && p.UserID == userID
}

func (p *Principal) Admin() bool {
	return p != nil && p.IsAdmin
}

type principalCtxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalCtxKey{}).(*Principal)
	return p
}
