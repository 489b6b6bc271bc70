package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "bookmarkapi/internal/errors"
	"bookmarkapi/internal/model"
	"bookmarkapi/internal/repository"
)

// EditUserInput carries the profile fields to change; nil means unchanged.
type EditUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	GetMe(ctx context.Context, id uuid.UUID) (*model.UserView, error)
	Edit(ctx context.Context, id uuid.UUID, input EditUserInput) (*model.UserView, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetMe(ctx context.Context, id uuid.UUID) (*model.UserView, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := model.NewUserView(user)
	return &view, nil
}

func (s *userService) Edit(ctx context.Context, id uuid.UUID, input EditUserInput) (*model.UserView, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrCredentialsTaken
		}
		return nil, apperrors.Internal("update user", err)
	}

	view := model.NewUserView(user)
	return &view, nil
}

// find loads the principal's record; a token for a deleted user is no longer valid.
func (s *userService) find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.Internal("find user", err)
	}
	return user, nil
}
