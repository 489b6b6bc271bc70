package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "bookmarkapi/internal/errors"
)

// AccessTokenExpiry is the default lifetime of an access token.
const AccessTokenExpiry = 15 * time.Minute

// Claims represents JWT claims. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenResponse is the body returned by sign up and sign in.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a JWTService.
type Option func(*JWTService)

// WithClock overrides the issuance clock.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, ttl time.Duration, opts ...Option) *JWTService {
	if ttl <= 0 {
		ttl = AccessTokenExpiry
	}
	s := &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs an access token for the user.
func (s *JWTService) Issue(userID uuid.UUID, email string) (string, error) {
	now := s.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and returns its claims.
// Expired tokens yield ErrTokenExpired, anything else ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		// A forged token may be expired too; only a genuine one reports expiry.
		if errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
