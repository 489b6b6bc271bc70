package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookmarkapi/internal/model"
)

// BookmarkRepository defines bookmark persistence operations.
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *model.Bookmark) error
	Update(ctx context.Context, bookmark *model.Bookmark) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bookmark, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Bookmark, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository.
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Create creates a new bookmark.
func (r *bookmarkRepository) Create(ctx context.Context, bookmark *model.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

// Update updates an existing bookmark.
func (r *bookmarkRepository) Update(ctx context.Context, bookmark *model.Bookmark) error {
	return r.db.WithContext(ctx).Save(bookmark).Error
}

// Delete removes a bookmark by ID.
func (r *bookmarkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Bookmark{}).Error
}

// FindByID finds a bookmark by ID.
func (r *bookmarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&bookmark).Error; err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// FindByUserID lists the bookmarks of a user, oldest first.
func (r *bookmarkRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]model.Bookmark, error) {
	bookmarks := []model.Bookmark{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&bookmarks).Error; err != nil {
		return nil, err
	}
	return bookmarks, nil
}
