package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskops/internal/errors"
	"taskops/internal/model"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &model.User{ID: "u1", Email: "a@test.com", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &model.User{ID: "u2", Email: "b@test.com"}))

	got, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@test.com", got.Email)

	byEmail, err := repo.FindByEmail(ctx, "b@test.com")
	require.NoError(t, err)
	assert.Equal(t, "u2", byEmail.ID)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	active, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, &model.User{ID: "u1", Email: "a@test.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{ID: "u2", Email: "a@test.com"}), ErrDuplicateEmail)
	assert.NoError(t, repo.Create(ctx, &model.User{ID: "u3", Email: "A@test.com"}))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{ID: "u1", Email: "c@test.com"}), ErrDuplicateID)
}

func TestUserRepository_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &model.User{ID: fmt.Sprintf("u%d", i), Email: fmt.Sprintf("%d@test.com", i)}))
	}
	require.NoError(t, repo.Delete(ctx, "u2"))

	users, err := repo.List(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"u0", "u1", "u3", "u4"}, ids)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &model.User{ID: "u1", Name: "Maria", Email: "m@test.com"}))

	got, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	got.Name = "changed"

	users, _ := repo.List(ctx)
	users[0].Name = "changed too"

	again, _ := repo.FindByID(ctx, "u1")
	assert.Equal(t, "Maria", again.Name)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &model.User{ID: "u1", Name: "Maria", Email: "m@test.com"}))

	updated, err := repo.Update(ctx, "u1", func(u *model.User) error {
		u.Name = "Maria Silva"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", updated.Name)

	_, err = repo.Update(ctx, "u1", func(u *model.User) error {
		u.Name = "discarded"
		return apperrors.NewValidationError("Invalid email format")
	})
	assert.True(t, apperrors.IsValidation(err))
	again, _ := repo.FindByID(ctx, "u1")
	assert.Equal(t, "Maria Silva", again.Name)

	_, err = repo.Update(ctx, "missing", func(*model.User) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1"), apperrors.ErrUserNotFound)
}

func TestUserRepository_ConcurrentCreatesSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := repo.Create(ctx, &model.User{ID: fmt.Sprintf("u%d", i), Email: "same@test.com"}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	users, _ := repo.List(ctx)
	assert.Len(t, users, 1)
}
