package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "taskops/internal/errors"
	"taskops/internal/model"
	"taskops/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id string, mutate func(*model.User) error) (*model.User, error) {
	args := m.Called(ctx, id, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newTestUserService() UserService {
	return NewUserService(repository.NewUserRepository(), nil)
}

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		input         model.CreateUserInput
		expectedError string
		expectedRole  model.Role
	}{
		{
			name:         "defaults role to user",
			input:        model.CreateUserInput{Name: "Maria", Email: "maria@test.com"},
			expectedRole: model.RoleUser,
		},
		{
			name:         "keeps explicit role",
			input:        model.CreateUserInput{Name: "Ana", Email: "ana@test.com", Role: model.RoleManager},
			expectedRole: model.RoleManager,
		},
		{
			name:          "missing email",
			input:         model.CreateUserInput{Name: "Maria"},
			expectedError: "Missing required fields: name and email",
		},
		{
			name:          "missing name",
			input:         model.CreateUserInput{Email: "maria@test.com"},
			expectedError: "Missing required fields: name and email",
		},
		{
			name:          "invalid email",
			input:         model.CreateUserInput{Name: "Maria", Email: "invalid-email"},
			expectedError: "Invalid email format",
		},
		{
			name:          "blank name",
			input:         model.CreateUserInput{Name: "   ", Email: "maria@test.com"},
			expectedError: "Name cannot be empty",
		},
		{
			name:          "unknown role",
			input:         model.CreateUserInput{Name: "Maria", Email: "maria@test.com", Role: "owner"},
			expectedError: "Invalid role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUserService()
			user, err := svc.CreateUser(context.Background(), tt.input)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, user.ID)
			assert.Contains(t, user.ID, "user_")
			assert.True(t, user.IsActive)
			assert.Equal(t, tt.expectedRole, user.Role)
			assert.Equal(t, tt.input.Email, user.Email)
			assert.False(t, user.CreatedAt.IsZero())
			assert.Equal(t, user.CreatedAt, user.UpdatedAt)
		})
	}
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	_, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "Maria", Email: "maria@test.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, model.CreateUserInput{Name: "Other", Email: "maria@test.com"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Email already exists", err.Error())

	// matching is exact, so a different case is a different email
	_, err = svc.CreateUser(ctx, model.CreateUserInput{Name: "Upper", Email: "MARIA@test.com"})
	assert.NoError(t, err)
}

func TestUserService_CreateUser_RepositoryError(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(errors.New("store unavailable"))

	svc := NewUserService(repo, nil)
	user, err := svc.CreateUser(context.Background(), model.CreateUserInput{Name: "Maria", Email: "maria@test.com"})

	assert.Nil(t, user)
	require.Error(t, err)
	assert.False(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "store unavailable")
	repo.AssertExpectations(t)
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	created, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "Maria", Email: "maria@test.com"})
	require.NoError(t, err)

	found, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	missing, err := svc.GetUser(ctx, "non-existent-id")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserService_GetUser_PropagatesUnexpectedErrors(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, "u1").Return(nil, errors.New("boom"))

	svc := NewUserService(repo, nil)
	user, err := svc.GetUser(context.Background(), "u1")

	assert.Nil(t, user)
	assert.EqualError(t, err, "boom")
	repo.AssertExpectations(t)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	created, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "Maria", Email: "maria@test.com"})
	require.NoError(t, err)

	name := "Maria Silva"
	inactive := false
	updated, err := svc.UpdateUser(ctx, created.ID, model.UserPatch{Name: &name, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", updated.Name)
	assert.Equal(t, "maria@test.com", updated.Email)
	assert.False(t, updated.IsActive)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	badEmail := "not-an-email"
	_, err = svc.UpdateUser(ctx, created.ID, model.UserPatch{Email: &badEmail})
	assert.True(t, apperrors.IsValidation(err))

	badRole := model.Role("owner")
	_, err = svc.UpdateUser(ctx, created.ID, model.UserPatch{Role: &badRole})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdateUser(ctx, "non-existent-id", model.UserPatch{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_UpdateUser_DoesNotCheckEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	_, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "Maria", Email: "maria@test.com"})
	require.NoError(t, err)
	other, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "Joao", Email: "joao@test.com"})
	require.NoError(t, err)

	taken := "maria@test.com"
	updated, err := svc.UpdateUser(ctx, other.ID, model.UserPatch{Email: &taken})
	require.NoError(t, err)
	assert.Equal(t, "maria@test.com", updated.Email)
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	created, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "Maria", Email: "maria@test.com"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	found, err := svc.GetUser(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	assert.ErrorIs(t, svc.DeleteUser(ctx, created.ID), apperrors.ErrUserNotFound)
}

func TestUserService_ListAndActiveCount(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	first, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "A", Email: "a@test.com"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, model.CreateUserInput{Name: "B", Email: "b@test.com"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateUser(ctx, first.ID, model.UserPatch{IsActive: &inactive})
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@test.com", users[0].Email)
	assert.Equal(t, "b@test.com", users[1].Email)

	count, err := svc.ActiveUsersCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserService_UpdateUser_RejectsEmptyEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService()

	created, err := svc.CreateUser(ctx, model.CreateUserInput{Name: "Maria", Email: "maria@test.com"})
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdateUser(ctx, created.ID, model.UserPatch{Email: &empty})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Invalid email format", err.Error())

	stored, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "maria@test.com", stored.Email)
}
