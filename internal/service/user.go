package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/perchpost/perchpost/internal/auth"
	"github.com/perchpost/perchpost/internal/authz"
	"github.com/perchpost/perchpost/internal/metrics"
	"github.com/perchpost/perchpost/internal/model"
	"github.com/perchpost/perchpost/internal/repository"
)

// UserService owns user records and credential verification.
type UserService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		metrics: recorder,
	}
}

// SignUpInput defines input for creating an account.
type SignUpInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

// SignUp validates the input, hashes the password, and persists the user.
// Duplicate username/email is the unique constraint's call, made at commit
// time; there is no pre-check read to race against.
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (*model.User, error) {
	if err := ValidateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           newID(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		ImageURL:     input.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.ApplyImageDefaults()

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrIdentityExists) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncSignup()

	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords fail identically: same error, same argon2 work.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			auth.VerifyDummy(password)
			s.metrics.IncLoginFailure()
			return nil, ErrAuthFailed
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return nil, ErrAuthFailed
	}

	s.metrics.IncLoginSuccess()

	return user, nil
}

// UpdateProfileInput defines input for mutating a profile. Nil fields are
// left unchanged. CurrentPassword is the re-authentication step and is
// always required.
type UpdateProfileInput struct {
	Username        *string
	Email           *string
	ImageURL        *string
	HeaderImageURL  *string
	Bio             *string
	CurrentPassword string
}

// UpdateProfile re-authenticates with the current password, then applies
// the requested field changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*model.User, error) {
	user, err := s.getByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	match, err := auth.VerifyPassword(input.CurrentPassword, user.PasswordHash)
	if err != nil || !match {
		return nil, ErrAuthFailed
	}

	if input.Username != nil {
		if err := ValidateUsername(*input.Username); err != nil {
			return nil, err
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		if err := ValidateEmail(*input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.ImageURL != nil {
		user.ImageURL = *input.ImageURL
	}
	if input.HeaderImageURL != nil {
		user.HeaderImageURL = *input.HeaderImageURL
	}
	if input.Bio != nil {
		if err := ValidateBio(*input.Bio); err != nil {
			return nil, err
		}
		user.Bio = *input.Bio
	}
	user.ApplyImageDefaults()
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrIdentityExists) {
			return nil, ErrDuplicateIdentity
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes a user. Messages and follow edges on either side
// are removed atomically with the user row.
func (s *UserService) DeleteAccount(ctx context.Context, sessionUserID, targetUserID string) error {
	if !authz.CanModifyProfile(sessionUserID, targetUserID) {
		s.metrics.IncAuthzDenied("user.delete")
		return ErrNotAuthorized
	}

	if err := s.repo.DeleteUser(ctx, targetUserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.getByID(ctx, id)
}

func (s *UserService) getByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
