package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bookmarkapi/internal/auth"
	"bookmarkapi/internal/errors"
	"bookmarkapi/internal/service"
)

// BookmarkHandler handles bookmark endpoints.
type BookmarkHandler struct {
	bookmarkService service.BookmarkService
}

// NewBookmarkHandler creates a new bookmark handler.
func NewBookmarkHandler(bookmarkService service.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarkService: bookmarkService}
}

// CreateBookmarkRequest represents a new bookmark.
type CreateBookmarkRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Link        string `json:"link" validate:"required,url"`
}

// EditBookmarkRequest represents a partial bookmark update.
type EditBookmarkRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Link        *string `json:"link" validate:"omitempty,url"`
}

// ListBookmarks godoc
// @Summary List own bookmarks
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Bookmark
// @Failure 401 {object} errors.ErrorResponse
// @Router /bookmarks [get]
func (h *BookmarkHandler) ListBookmarks(c echo.Context) error {
	ctx := c.Request().Context()
	bookmarks, err := h.bookmarkService.List(ctx, auth.MustPrincipal(ctx).ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// GetBookmark godoc
// @Summary Get own bookmark by id
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bookmark ID"
// @Success 200 {object} model.Bookmark
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookmarks/{id} [get]
func (h *BookmarkHandler) GetBookmark(c echo.Context) error {
	id, err := bookmarkID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	bookmark, err := h.bookmarkService.Get(ctx, auth.MustPrincipal(ctx).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmark)
}

// CreateBookmark godoc
// @Summary Create bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookmarkRequest true "Bookmark"
// @Success 201 {object} model.Bookmark
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /bookmarks [post]
func (h *BookmarkHandler) CreateBookmark(c echo.Context) error {
	var req CreateBookmarkRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	bookmark, err := h.bookmarkService.Create(ctx, auth.MustPrincipal(ctx).ID, service.CreateBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookmark)
}

// EditBookmark godoc
// @Summary Edit own bookmark
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bookmark ID"
// @Param request body EditBookmarkRequest true "Fields to change"
// @Success 200 {object} model.Bookmark
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /bookmarks/{id} [patch]
func (h *BookmarkHandler) EditBookmark(c echo.Context) error {
	id, err := bookmarkID(c)
	if err != nil {
		return err
	}
	var req EditBookmarkRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	bookmark, err := h.bookmarkService.Edit(ctx, auth.MustPrincipal(ctx).ID, id, service.EditBookmarkInput{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmark)
}

// DeleteBookmark godoc
// @Summary Delete own bookmark
// @Tags bookmarks
// @Security BearerAuth
// @Param id path string true "Bookmark ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /bookmarks/{id} [delete]
func (h *BookmarkHandler) DeleteBookmark(c echo.Context) error {
	id, err := bookmarkID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.bookmarkService.Delete(ctx, auth.MustPrincipal(ctx).ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bookmarkID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.Validation("invalid bookmark ID")
	}
	return id, nil
}
