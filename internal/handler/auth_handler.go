package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookmarkapi/internal/auth"
	"bookmarkapi/internal/errors"
	"bookmarkapi/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AuthRequest represents sign up and sign in credentials.
type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignUp godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AuthRequest true "Credentials"
// @Success 201 {object} auth.TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signUp [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	result, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, auth.TokenResponse{AccessToken: result.AccessToken})
}

// SignIn godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AuthRequest true "Credentials"
// @Success 200 {object} auth.TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signIn [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return err
	}

	result, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, auth.TokenResponse{AccessToken: result.AccessToken})
}

func bindCredentials(c echo.Context) (*AuthRequest, error) {
	var req AuthRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// bind decodes and validates the request body into dst.
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return errors.Validation("invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return errors.Validation(err.Error())
	}
	return nil
}
