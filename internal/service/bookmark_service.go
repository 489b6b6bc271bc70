package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookmarkapi/internal/cache"
	apperrors "bookmarkapi/internal/errors"
	"bookmarkapi/internal/model"
	"bookmarkapi/internal/repository"
)

// CreateBookmarkInput carries a new bookmark.
type CreateBookmarkInput struct {
	Title       string
	Description string
	Link        string
}

// EditBookmarkInput carries the bookmark fields to change; nil means unchanged.
type EditBookmarkInput struct {
	Title       *string
	Description *string
	Link        *string
}

// BookmarkService exposes owner-scoped bookmark operations.
type BookmarkService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Bookmark, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Bookmark, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateBookmarkInput) (*model.Bookmark, error)
	Edit(ctx context.Context, userID, id uuid.UUID, input EditBookmarkInput) (*model.Bookmark, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type bookmarkService struct {
	repo     repository.BookmarkRepository
	cache    *cache.Client
	cacheTTL time.Duration
}

// NewBookmarkService builds a BookmarkService. Per-user lists are cached for cacheTTL.
func NewBookmarkService(repo repository.BookmarkRepository, cache *cache.Client, cacheTTL time.Duration) BookmarkService {
	return &bookmarkService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *bookmarkService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("bookmarks:user:%s", userID)
}

func (s *bookmarkService) List(ctx context.Context, userID uuid.UUID) ([]model.Bookmark, error) {
	var cached []model.Bookmark
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return cached, nil
	}

	bookmarks, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("list bookmarks", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(userID), bookmarks, s.cacheTTL)
	return bookmarks, nil
}

func (s *bookmarkService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Bookmark, error) {
	bookmark, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBookmarkNotFound
		}
		return nil, apperrors.Internal("find bookmark", err)
	}
	// Someone else's bookmark is indistinguishable from a missing one.
	if bookmark.UserID != userID {
		return nil, apperrors.ErrBookmarkNotFound
	}
	return bookmark, nil
}

func (s *bookmarkService) Create(ctx context.Context, userID uuid.UUID, input CreateBookmarkInput) (*model.Bookmark, error) {
	bookmark := &model.Bookmark{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Link:        input.Link,
	}
	if err := s.repo.Create(ctx, bookmark); err != nil {
		return nil, apperrors.Internal("create bookmark", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return bookmark, nil
}

func (s *bookmarkService) Edit(ctx context.Context, userID, id uuid.UUID, input EditBookmarkInput) (*model.Bookmark, error) {
	bookmark, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		bookmark.Title = *input.Title
	}
	if input.Description != nil {
		bookmark.Description = *input.Description
	}
	if input.Link != nil {
		bookmark.Link = *input.Link
	}

	if err := s.repo.Update(ctx, bookmark); err != nil {
		return nil, apperrors.Internal("update bookmark", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return bookmark, nil
}

func (s *bookmarkService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal("delete bookmark", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}

// owned loads a bookmark for modification; missing and foreign bookmarks are denied alike.
func (s *bookmarkService) owned(ctx context.Context, userID, id uuid.UUID) (*model.Bookmark, error) {
	bookmark, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccessDenied
		}
		return nil, apperrors.Internal("find bookmark", err)
	}
	if bookmark.UserID != userID {
		return nil, apperrors.ErrAccessDenied
	}
	return bookmark, nil
}
