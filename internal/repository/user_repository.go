package repository

import (
	"context"

	apperrors "taskops/internal/errors"
	"taskops/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, mutate func(*model.User) error) (*model.User, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}

type userRepository struct {
	store *orderedStore[model.User]
}

// NewUserRepository builds an in-memory user repository.
func NewUserRepository() UserRepository {
	return &userRepository{store: newOrderedStore[model.User]()}
}

// Create stores user, rejecting an email that is already taken (exact match).
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.store.insert(user.ID, *user, func(existing model.User) error {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
		return nil
	})
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	user, ok := r.store.get(id)
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	matches := r.store.filter(func(u model.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return &matches[0], nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return r.store.filter(nil), nil
}

func (r *userRepository) Update(ctx context.Context, id string, mutate func(*model.User) error) (*model.User, error) {
	user, found, err := r.store.update(id, mutate)
	if !found {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if !r.store.remove(id) {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) CountActive(ctx context.Context) (int, error) {
	return r.store.count(func(u model.User) bool { return u.IsActive }), nil
}
