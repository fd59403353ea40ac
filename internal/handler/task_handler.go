package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskops/internal/logger"
	"taskops/internal/model"
	"taskops/internal/service"
)

// TaskHandler serves the /tasks endpoints.
type TaskHandler struct {
	svc    service.TaskService
	logger *zap.Logger
}

// NewTaskHandler creates a task handler.
func NewTaskHandler(svc service.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger.OrNop(log)}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Priority    model.TaskPriority `json:"priority,omitempty" enums:"low,medium,high,urgent"`
	AssignedTo  string             `json:"assignedTo"`
	CreatedBy   string             `json:"createdBy"`
	DueDate     string             `json:"dueDate" example:"2025-12-31"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are kept.
type UpdateTaskRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Status      *model.TaskStatus   `json:"status,omitempty" enums:"todo,in_progress,done,cancelled"`
	Priority    *model.TaskPriority `json:"priority,omitempty" enums:"low,medium,high,urgent"`
	AssignedTo  *string             `json:"assignedTo,omitempty"`
	DueDate     *string             `json:"dueDate,omitempty" example:"2025-12-31"`
}

func (r UpdateTaskRequest) patch() (model.TaskPatch, error) {
	patch := model.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
	}
	if r.DueDate != nil {
		due, err := parseDate(*r.DueDate)
		if err != nil {
			return model.TaskPatch{}, err
		}
		patch.DueDate = &due
	}
	return patch, nil
}

// CreateTask godoc
// @Summary Create task
// @Description Status starts as todo; priority defaults to medium.
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body CreateTaskRequest true "Task payload"
// @Success 201 {object} Response{data=model.Task}
// @Failure 400 {object} Response
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}

	var due time.Time
	if req.DueDate != "" {
		parsed, err := parseDate(req.DueDate)
		if err != nil {
			return badRequest("Invalid due date")
		}
		due = parsed
	}

	task, err := h.svc.CreateTask(c.Request().Context(), model.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   req.CreatedBy,
		DueDate:     due,
	})
	if err != nil {
		h.logger.Error("Error creating task", zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusCreated, task, "Task created successfully")
}

// ListTasks godoc
// @Summary List tasks
// @Description userId takes precedence over status when both are given.
// @Tags tasks
// @Produce json
// @Param userId query string false "Assignee user ID"
// @Param status query string false "Task status" Enums(todo, in_progress, done, cancelled)
// @Success 200 {object} Response{data=[]model.Task}
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		tasks []model.Task
		err   error
	)
	switch {
	case c.QueryParam("userId") != "":
		tasks, err = h.svc.ListTasksByAssignee(ctx, c.QueryParam("userId"))
	case c.QueryParam("status") != "":
		tasks, err = h.svc.ListTasksByStatus(ctx, model.TaskStatus(c.QueryParam("status")))
	default:
		tasks, err = h.svc.ListTasks(ctx)
	}
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks, "")
}

// TaskStatistics godoc
// @Summary Task statistics
// @Tags tasks
// @Produce json
// @Success 200 {object} Response{data=model.TaskStatistics}
// @Router /tasks/statistics [get]
func (h *TaskHandler) TaskStatistics(c echo.Context) error {
	stats, err := h.svc.TaskStatistics(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats, "")
}

// ListOverdueTasks godoc
// @Summary List overdue tasks
// @Description Open tasks whose due date has passed.
// @Tags tasks
// @Produce json
// @Success 200 {object} Response{data=[]model.Task}
// @Router /tasks/overdue [get]
func (h *TaskHandler) ListOverdueTasks(c echo.Context) error {
	tasks, err := h.svc.ListOverdueTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks, "")
}

// GetTask godoc
// @Summary Get task by id
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} Response{data=model.Task}
// @Failure 404 {object} Response
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	task, err := h.svc.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return readError(err)
	}
	if task == nil {
		return notFound("Task not found")
	}
	return respond(c, http.StatusOK, task, "")
}

// UpdateTask godoc
// @Summary Update task
// @Description Any status may follow any other.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} Response{data=model.Task}
// @Failure 400 {object} Response
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("Invalid request body")
	}
	patch, err := req.patch()
	if err != nil {
		return badRequest("Invalid due date")
	}

	task, err := h.svc.UpdateTask(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		h.logger.Error("Error updating task", zap.String("task_id", c.Param("id")), zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusOK, task, "Task updated successfully")
}

// DeleteTask godoc
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.svc.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		h.logger.Error("Error deleting task", zap.String("task_id", c.Param("id")), zap.Error(err))
		return writeError(err)
	}
	return respond(c, http.StatusOK, nil, "Task deleted successfully")
}
