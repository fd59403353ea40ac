package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "taskops/internal/errors"
	"taskops/internal/logger"
	"taskops/internal/model"
	"taskops/internal/repository"
	"taskops/internal/validation"
)

// TaskService exposes task domain operations.
type TaskService interface {
	CreateTask(ctx context.Context, input model.CreateTaskInput) (*model.Task, error)
	// GetTask returns nil without an error when the task does not exist.
	GetTask(ctx context.Context, id string) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ListTasksByAssignee(ctx context.Context, userID string) ([]model.Task, error)
	ListTasksByStatus(ctx context.Context, status model.TaskStatus) ([]model.Task, error)
	ListOverdueTasks(ctx context.Context) ([]model.Task, error)
	TaskStatistics(ctx context.Context) (*model.TaskStatistics, error)
}

type taskService struct {
	repo   repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewTaskService builds a TaskService on top of repo.
func NewTaskService(repo repository.TaskRepository, log *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger.OrNop(log), now: time.Now}
}

func (s *taskService) CreateTask(ctx context.Context, input model.CreateTaskInput) (*model.Task, error) {
	s.logger.Info("Creating new task", zap.String("title", input.Title))

	if !validation.HasRequiredFields(map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"assignedTo":  input.AssignedTo,
		"createdBy":   input.CreatedBy,
		"dueDate":     input.DueDate,
	}) {
		return nil, apperrors.NewValidationError("Missing required fields")
	}
	if !validation.IsNotEmpty(input.Title) {
		return nil, apperrors.NewValidationError("Title cannot be empty")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("Invalid priority")
	}

	now := s.now()
	task := &model.Task{
		ID:          newID("task"),
		Title:       input.Title,
		Description: input.Description,
		Status:      model.TaskStatusTodo,
		Priority:    priority,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   input.CreatedBy,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Info("Task created successfully", zap.String("task_id", task.ID))
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	s.logger.Debug("Fetching task by ID", zap.String("task_id", id))

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	s.logger.Debug("Fetching all tasks")
	return s.repo.List(ctx, repository.TaskFilter{})
}

// UpdateTask merges patch into the stored task. Status changes are not
// restricted: any status may follow any other.
func (s *taskService) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	s.logger.Info("Updating task", zap.String("task_id", id))

	updated, err := s.repo.Update(ctx, id, func(task *model.Task) error {
		if patch.Status != nil && !patch.Status.Valid() {
			return apperrors.NewValidationError("Invalid status")
		}
		if patch.Priority != nil && !patch.Priority.Valid() {
			return apperrors.NewValidationError("Invalid priority")
		}
		patch.Apply(task)
		task.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task updated successfully", zap.String("task_id", id))
	return updated, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	s.logger.Info("Deleting task", zap.String("task_id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Task deleted successfully", zap.String("task_id", id))
	return nil
}

func (s *taskService) ListTasksByAssignee(ctx context.Context, userID string) ([]model.Task, error) {
	s.logger.Debug("Fetching tasks by user", zap.String("user_id", userID))
	if userID == "" {
		return []model.Task{}, nil
	}
	return s.repo.List(ctx, repository.TaskFilter{AssignedTo: userID})
}

func (s *taskService) ListTasksByStatus(ctx context.Context, status model.TaskStatus) ([]model.Task, error) {
	s.logger.Debug("Fetching tasks by status", zap.String("status", string(status)))
	if status == "" {
		return []model.Task{}, nil
	}
	return s.repo.List(ctx, repository.TaskFilter{Status: status})
}

// ListOverdueTasks returns open tasks (neither done nor cancelled) whose due date has passed.
func (s *taskService) ListOverdueTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	now := s.now()
	overdue := make([]model.Task, 0)
	for i := range tasks {
		if tasks[i].IsOverdue(now) {
			overdue = append(overdue, tasks[i])
		}
	}
	return overdue, nil
}

func (s *taskService) TaskStatistics(ctx context.Context) (*model.TaskStatistics, error) {
	tasks, err := s.repo.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	stats := tallyTasks(tasks)
	return &stats, nil
}

// tallyTasks counts tasks by status and priority. Only values that occur appear in the maps.
func tallyTasks(tasks []model.Task) model.TaskStatistics {
	stats := model.TaskStatistics{
		Total:      len(tasks),
		ByStatus:   make(map[model.TaskStatus]int),
		ByPriority: make(map[model.TaskPriority]int),
	}
	for _, task := range tasks {
		stats.ByStatus[task.Status]++
		stats.ByPriority[task.Priority]++
	}
	return stats
}
