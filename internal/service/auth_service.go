package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bookmarkapi/internal/auth"
	apperrors "bookmarkapi/internal/errors"
	"bookmarkapi/internal/model"
	"bookmarkapi/internal/repository"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// AuthResult is the outcome of a successful sign up or sign in.
type AuthResult struct {
	User        model.UserView
	AccessToken string
}

// AuthService handles authentication operations.
type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   auth.Hasher
	tokens   TokenIssuer
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher auth.Hasher, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// SignUp creates a user with a hashed password and issues a token for it.
func (s *authService) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}

	user := &model.User{
		Email: email,
		Hash:  hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.ErrCredentialsTaken
		}
		return nil, apperrors.Internal("create user", err)
	}

	return s.issue(user)
}

// SignIn verifies credentials and issues a token. Unknown email and wrong
// password fail with the same error.
func (s *authService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCredentialsIncorrect
		}
		return nil, apperrors.Internal("find user", err)
	}

	ok, err := s.hasher.Verify(ctx, user.Hash, password)
	if err != nil {
		return nil, apperrors.Internal("verify password", err)
	}
	if !ok {
		return nil, apperrors.ErrCredentialsIncorrect
	}

	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Internal("sign token", err)
	}
	return &AuthResult{
		User:        model.NewUserView(user),
		AccessToken: token,
	}, nil
}
