package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalAccessors(t *testing.T) {
	id := uuid.New()
	issued := time.Now().Truncate(time.Second)
	p, err := PrincipalFromClaims(&Claims{
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(AccessTokenExpiry)),
		},
	})
	require.NoError(t, err)

	ctx := WithPrincipal(context.Background(), p)

	got, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Same(t, p, got)
	assert.Same(t, p, MustPrincipal(ctx))

	assert.Equal(t, id, PrincipalField(ctx, "id"))
	assert.Equal(t, "a@b.com", PrincipalField(ctx, "email"))
	assert.True(t, issued.Equal(PrincipalField(ctx, "issued_at").(time.Time)))
	assert.True(t, issued.Add(AccessTokenExpiry).Equal(PrincipalField(ctx, "expires_at").(time.Time)))
}

func TestPrincipalAccessors_Unguarded(t *testing.T) {
	ctx := context.Background()

	_, ok := PrincipalFrom(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { MustPrincipal(ctx) })
	assert.Panics(t, func() { PrincipalField(ctx, "email") })
}

func TestPrincipalField_Unknown(t *testing.T) {
	ctx := WithPrincipal(context.Background(), &Principal{ID: uuid.New(), Email: "a@b.com"})
	assert.Panics(t, func() { PrincipalField(ctx, "hash") })
}

func TestPrincipalFromClaims_BadSubject(t *testing.T) {
	_, err := PrincipalFromClaims(&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "nope"}})
	assert.Error(t, err)
}
