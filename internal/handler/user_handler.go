package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookmarkapi/internal/auth"
	"bookmarkapi/internal/service"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// EditUserRequest represents a profile edit.
type EditUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,max=255"`
	LastName  *string `json:"lastName" validate:"omitempty,max=255"`
}

// GetMe godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserView
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.svc.GetMe(ctx, auth.MustPrincipal(ctx).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// EditUser godoc
// @Summary Edit current user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EditUserRequest true "Profile fields"
// @Success 200 {object} model.UserView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [patch]
func (h *UserHandler) EditUser(c echo.Context) error {
	var req EditUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.svc.Edit(ctx, auth.MustPrincipal(ctx).ID, service.EditUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
