package model

import "time"

// TaskStatus is the lifecycle state of a task. Any status may move to any other.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusCancelled:
		return true
	}
	return false
}

// Closed reports whether the task no longer counts towards overdue work.
func (s TaskStatus) Closed() bool {
	return s == TaskStatusDone || s == TaskStatusCancelled
}

// TaskPriority ranks the urgency of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work. AssignedTo and CreatedBy hold user ids but are
// not checked against the user store.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssignedTo  string       `json:"assignedTo"`
	CreatedBy   string       `json:"createdBy"`
	DueDate     time.Time    `json:"dueDate"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// IsOverdue reports whether the task is still open and past its due date at now.
func (t *Task) IsOverdue(now time.Time) bool {
	return t != nil && !t.Status.Closed() && t.DueDate.Before(now)
}

// CreateTaskInput is the payload accepted when creating a task.
type CreateTaskInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority,omitempty"`
	AssignedTo  string       `json:"assignedTo"`
	CreatedBy   string       `json:"createdBy"`
	DueDate     time.Time    `json:"dueDate"`
}

// TaskPatch lists the fields a task update may replace. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	AssignedTo  *string       `json:"assignedTo,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
}

// Apply merges the provided fields into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
}

// TaskStatistics is a full-scan tally of the task store.
type TaskStatistics struct {
	Total      int                  `json:"total"`
	ByStatus   map[TaskStatus]int   `json:"byStatus"`
	ByPriority map[TaskPriority]int `json:"byPriority"`
}
