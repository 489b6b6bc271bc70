package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"credentials incorrect", ErrCredentialsIncorrect, http.StatusForbidden, "CREDENTIALS_INCORRECT"},
		{"credentials taken", ErrCredentialsTaken, http.StatusForbidden, "CREDENTIALS_TAKEN"},
		{"missing credentials", ErrMissingCredentials, http.StatusUnauthorized, "MISSING_CREDENTIALS"},
		{"expired token", ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"wrapped sentinel", fmt.Errorf("sign in: %w", ErrCredentialsIncorrect), http.StatusForbidden, "CREDENTIALS_INCORRECT"},
		{"bookmark not found", ErrBookmarkNotFound, http.StatusNotFound, "BOOKMARK_NOT_FOUND"},
		{"access denied", ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
		{"validation", Validation("email is required"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{"internal", Internal("create user", errors.New("connection refused")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_InternalMessageHidden(t *testing.T) {
	httpErr := MapErrorToHTTP(Internal("find user", errors.New("dial tcp 10.0.0.1:3306")))
	assert.Equal(t, "internal server error", httpErr.Message)
	assert.Equal(t, ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}, httpErr.ToErrorResponse())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrap: %w", ErrCredentialsTaken)))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	cause := errors.New("disk full")
	err := Internal("hash password", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "hash password: disk full", err.Error())
}
