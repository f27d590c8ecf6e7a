// Package service contains the business logic sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"

	"github.com/donggunkwak/Brainwave/internal/models"
	"github.com/donggunkwak/Brainwave/internal/repository"
	"github.com/donggunkwak/Brainwave/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService provides account management business logic.
type UserService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository

	// revokeSessions destroys every live session of the user. Wired to the
	// session store by the server; nil in tests that do not care.
	revokeSessions func(ctx context.Context, userID uint) error
}

// RegisterInput carries the fields for account creation.
type RegisterInput struct {
	Username string
	Password string
}

// ChangeUsernameInput carries the fields for a username change.
type ChangeUsernameInput struct {
	UserID   uint
	Username string
}

// ChangePasswordInput carries the fields for a password change.
type ChangePasswordInput struct {
	UserID   uint
	Password string
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	friendRepo repository.FriendRepository,
	revokeSessions func(ctx context.Context, userID uint) error,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		friendRepo:     friendRepo,
		revokeSessions: revokeSessions,
	}
}

// Register validates the credentials, hashes the password and creates the
// account. A taken username surfaces as a conflict from the repository.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the matching user. The
// same error covers an unknown username and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid username or password")
	}
	return user, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByUsername returns the user carrying the given username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	return user, nil
}

// List returns a page of users, newest first.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// ChangeUsername renames the user's account.
func (s *UserService) ChangeUsername(ctx context.Context, in ChangeUsernameInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the user's password.
func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if err := validation.ValidatePassword(in.Password); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the user, their friendships and pending requests, and
// revokes every session so old cookies stop working immediately.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.friendRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if s.revokeSessions != nil {
		if err := s.revokeSessions(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}
