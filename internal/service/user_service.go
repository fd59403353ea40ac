package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "taskops/internal/errors"
	"taskops/internal/logger"
	"taskops/internal/model"
	"taskops/internal/repository"
	"taskops/internal/validation"
)

// UserService exposes user domain operations.
type UserService interface {
	CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error)
	// GetUser returns nil without an error when the user does not exist.
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	ActiveUsersCount(ctx context.Context) (int, error)
}

type userService struct {
	repo   repository.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService builds a UserService on top of repo.
func NewUserService(repo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger.OrNop(log), now: time.Now}
}

func (s *userService) CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	s.logger.Info("Creating new user", zap.String("email", input.Email))

	if !validation.HasRequiredFields(map[string]interface{}{
		"name":  input.Name,
		"email": input.Email,
	}) {
		return nil, apperrors.NewValidationError("Missing required fields: name and email")
	}
	if !validation.IsValidEmail(input.Email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	if !validation.IsNotEmpty(input.Name) {
		return nil, apperrors.NewValidationError("Name cannot be empty")
	}

	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid role")
	}

	now := s.now()
	user := &model.User{
		ID:        newID("user"),
		Name:      input.Name,
		Email:     input.Email,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewValidationError("Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User created successfully", zap.String("user_id", user.ID))
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.logger.Debug("Fetching user by ID", zap.String("user_id", id))

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	s.logger.Debug("Fetching all users")
	return s.repo.List(ctx)
}

// UpdateUser merges patch into the stored user. A new email is checked for
// format only; it is not checked against other users' emails.
func (s *userService) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	s.logger.Info("Updating user", zap.String("user_id", id))

	updated, err := s.repo.Update(ctx, id, func(user *model.User) error {
		if patch.Email != nil && !validation.IsValidEmail(*patch.Email) {
			return apperrors.NewValidationError("Invalid email format")
		}
		if patch.Role != nil && !patch.Role.Valid() {
			return apperrors.NewValidationError("Invalid role")
		}
		patch.Apply(user)
		user.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated successfully", zap.String("user_id", id))
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	s.logger.Info("Deleting user", zap.String("user_id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deleted successfully", zap.String("user_id", id))
	return nil
}

func (s *userService) ActiveUsersCount(ctx context.Context) (int, error) {
	return s.repo.CountActive(ctx)
}
