package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an application error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindForbidden
	KindConflict
	KindNotFound
)

// Error is the application error carried from services to handlers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindInternal {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrCredentialsIncorrect is returned for an unknown email and for a wrong password alike.
	ErrCredentialsIncorrect = &Error{Kind: KindAuthentication, Message: "Credentials incorrect"}
	// ErrCredentialsTaken is returned when signing up with an email that already exists.
	ErrCredentialsTaken = &Error{Kind: KindConflict, Message: "Credentials taken"}
	// ErrMissingCredentials is returned when no bearer token is presented.
	ErrMissingCredentials = &Error{Kind: KindAuthentication, Message: "Missing or malformed credentials"}
	// ErrInvalidToken is returned for tokens with a bad signature or shape.
	ErrInvalidToken = &Error{Kind: KindAuthentication, Message: "Invalid token"}
	// ErrTokenExpired is returned for tokens past their expiry.
	ErrTokenExpired = &Error{Kind: KindAuthentication, Message: "Token expired"}
	// ErrBookmarkNotFound is returned when a bookmark does not exist for the caller.
	ErrBookmarkNotFound = &Error{Kind: KindNotFound, Message: "bookmark not found"}
	// ErrAccessDenied is returned when modifying a bookmark the caller does not own.
	ErrAccessDenied = &Error{Kind: KindForbidden, Message: "Access to resources denied"}
)

// Validation wraps an input-shape failure.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Internal wraps an unexpected storage or crypto failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Sign-in and sign-up
// failures answer 403; token failures answer 401.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrCredentialsIncorrect):
		return NewHTTPError(http.StatusForbidden, ErrCredentialsIncorrect.Message, "CREDENTIALS_INCORRECT")
	case errors.Is(err, ErrCredentialsTaken):
		return NewHTTPError(http.StatusForbidden, ErrCredentialsTaken.Message, "CREDENTIALS_TAKEN")
	case errors.Is(err, ErrMissingCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrMissingCredentials.Message, "MISSING_CREDENTIALS")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenExpired.Message, "TOKEN_EXPIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Message, "INVALID_TOKEN")
	case errors.Is(err, ErrBookmarkNotFound):
		return NewHTTPError(http.StatusNotFound, ErrBookmarkNotFound.Message, "BOOKMARK_NOT_FOUND")
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusForbidden, ErrAccessDenied.Message, "ACCESS_DENIED")
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	switch appErr.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, "VALIDATION_FAILED")
	case KindAuthentication:
		return NewHTTPError(http.StatusUnauthorized, appErr.Message, "UNAUTHORIZED")
	case KindForbidden:
		return NewHTTPError(http.StatusForbidden, appErr.Message, "FORBIDDEN")
	case KindConflict:
		return NewHTTPError(http.StatusForbidden, appErr.Message, "CONFLICT")
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, appErr.Message, "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
