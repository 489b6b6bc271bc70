package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type contextKey struct {
	name string
}

var principalCtxKey = &contextKey{"principal"}

// Principal is the authenticated identity of the current request.
type Principal struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PrincipalFromClaims builds the principal from verified claims.
func PrincipalFromClaims(claims *Claims) (*Principal, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("parse subject: %w", err)
	}
	p := &Principal{ID: id, Email: claims.Email}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFrom finds the principal in ctx.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(*Principal)
	return p, ok && p != nil
}

// MustPrincipal returns the principal bound by the guard.
// It panics on a route that is not behind the guard.
func MustPrincipal(ctx context.Context) *Principal {
	p, ok := PrincipalFrom(ctx)
	if !ok {
		panic("auth: no principal in context; route is not guarded")
	}
	return p
}

// PrincipalField returns a single named field of the request principal.
func PrincipalField(ctx context.Context, name string) any {
	p := MustPrincipal(ctx)
	switch name {
	case "id":
		return p.ID
	case "email":
		return p.Email
	case "issued_at":
		return p.IssuedAt
	case "expires_at":
		return p.ExpiresAt
	default:
		panic(fmt.Sprintf("auth: unknown principal field %q", name))
	}
}
