package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bookmarkapi/internal/errors"
)

// newGuardedEcho mounts a single guarded route and renders errors the way the
// router's error handler does.
func newGuardedEcho(t *testing.T, svc *JWTService, called *bool) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		httpErr := apperrors.MapErrorToHTTP(err)
		_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	guard := NewGuard(svc, nil)
	e.GET("/users/me", func(c echo.Context) error {
		*called = true
		p := MustPrincipal(c.Request().Context())
		return c.JSON(http.StatusOK, p)
	}, guard.Middleware())
	return e
}

func serve(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGuard_Rejections(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	userID := uuid.New()

	foreign, err := NewJWTService("other-secret", time.Minute).Issue(userID, "a@b.com")
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	expired, err := NewJWTService("test-secret", time.Minute, WithClock(func() time.Time { return past })).Issue(userID, "a@b.com")
	require.NoError(t, err)
	valid, err := svc.Issue(userID, "a@b.com")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		expectedError string
	}{
		{"missing header", "", "Missing or malformed credentials"},
		{"wrong scheme", "Token " + valid, "Missing or malformed credentials"},
		{"bare token", valid, "Missing or malformed credentials"},
		{"empty bearer", "Bearer ", "Missing or malformed credentials"},
		{"foreign secret", "Bearer " + foreign, "Invalid token"},
		{"expired", "Bearer " + expired, "Token expired"},
		{"garbage", "Bearer abc.def.ghi", "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			e := newGuardedEcho(t, svc, &called)

			rec := serve(e, tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "handler must not run")

			var body apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedError, body.Error)
		})
	}
}

func TestGuard_Authorizes(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	userID := uuid.New()
	token, err := svc.Issue(userID, "a@b.com")
	require.NoError(t, err)

	called := false
	e := newGuardedEcho(t, svc, &called)

	rec := serve(e, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	var p Principal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, userID, p.ID)
	assert.Equal(t, "a@b.com", p.Email)
}

func TestGuard_BearerSchemeCaseInsensitive(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	token, err := svc.Issue(uuid.New(), "a@b.com")
	require.NoError(t, err)

	called := false
	e := newGuardedEcho(t, svc, &called)

	rec := serve(e, "bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type stubVerifier struct {
	err error
}

func (s stubVerifier) Verify(string) (*Claims, error) {
	return nil, s.err
}

func TestGuard_UnexpectedVerifierErrorIsGeneric(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		httpErr := apperrors.MapErrorToHTTP(err)
		_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	e.GET("/users/me", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewGuard(stubVerifier{err: errors.New("boom")}, nil).Middleware())

	rec := serve(e, "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
