package repository

import (
	"context"

	apperrors "taskops/internal/errors"
	"taskops/internal/model"
)

// TaskFilter narrows task listings. Empty fields match everything.
type TaskFilter struct {
	AssignedTo string
	Status     model.TaskStatus
}

func (f TaskFilter) matches(t model.Task) bool {
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, id string, mutate func(*model.Task) error) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskRepository struct {
	store *orderedStore[model.Task]
}

// NewTaskRepository builds an in-memory task repository.
func NewTaskRepository() TaskRepository {
	return &taskRepository{store: newOrderedStore[model.Task]()}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.store.insert(task.ID, *task, nil)
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	task, ok := r.store.get(id)
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	return r.store.filter(filter.matches), nil
}

func (r *taskRepository) Update(ctx context.Context, id string, mutate func(*model.Task) error) (*model.Task, error) {
	task, found, err := r.store.update(id, mutate)
	if !found {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if !r.store.remove(id) {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
