package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bookmarkapi/internal/errors"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 0)
	userID := uuid.New()

	token, err := svc.Issue(userID, "a@b.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, claims.IssuedAt.Add(AccessTokenExpiry), claims.ExpiresAt.Time, time.Second)
}

func TestJWTService_DistinctIssuances(t *testing.T) {
	fixed := time.Now()
	svc := NewJWTService("test-secret", time.Minute, WithClock(func() time.Time { return fixed }))
	userID := uuid.New()

	first, err := svc.Issue(userID, "a@b.com")
	require.NoError(t, err)
	second, err := svc.Issue(userID, "a@b.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTService_Verify_Rejections(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	userID := uuid.New()

	foreign, err := NewJWTService("other-secret", time.Minute).Issue(userID, "a@b.com")
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	expired, err := NewJWTService("test-secret", 15*time.Minute, WithClock(func() time.Time { return past })).Issue(userID, "a@b.com")
	require.NoError(t, err)

	expiredForeign, err := NewJWTService("other-secret", 15*time.Minute, WithClock(func() time.Time { return past })).Issue(userID, "a@b.com")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		expectedError error
	}{
		{"foreign secret", foreign, apperrors.ErrInvalidToken},
		{"expired", expired, apperrors.ErrTokenExpired},
		{"expired and foreign", expiredForeign, apperrors.ErrInvalidToken},
		{"alg none", unsigned, apperrors.ErrInvalidToken},
		{"non uuid subject", badSubject, apperrors.ErrInvalidToken},
		{"garbage", "not.a.token", apperrors.ErrInvalidToken},
		{"empty", "", apperrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}
}
