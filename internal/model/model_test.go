package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserPatch_Apply(t *testing.T) {
	u := User{Name: "Maria", Email: "maria@test.com", Role: RoleUser, IsActive: true}
	name := "Maria Silva"
	inactive := false

	UserPatch{Name: &name, IsActive: &inactive}.Apply(&u)

	assert.Equal(t, "Maria Silva", u.Name)
	assert.Equal(t, "maria@test.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.False(t, u.IsActive)
}

func TestTaskPatch_Apply(t *testing.T) {
	due := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{Title: "T", Status: TaskStatusTodo, Priority: TaskPriorityMedium, DueDate: due}
	done := TaskStatusDone

	TaskPatch{Status: &done}.Apply(&task)

	assert.Equal(t, TaskStatusDone, task.Status)
	assert.Equal(t, "T", task.Title)
	assert.Equal(t, TaskPriorityMedium, task.Priority)
	assert.Equal(t, due, task.DueDate)
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	for _, status := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress} {
		task := &Task{Status: status, DueDate: past}
		assert.True(t, task.IsOverdue(now), status)
	}
	for _, status := range []TaskStatus{TaskStatusDone, TaskStatusCancelled} {
		task := &Task{Status: status, DueDate: past}
		assert.False(t, task.IsOverdue(now), status)
	}
	assert.False(t, (&Task{Status: TaskStatusTodo, DueDate: now.Add(time.Hour)}).IsOverdue(now))
	assert.False(t, (*Task)(nil).IsOverdue(now))
}

func TestDateRange_ContainsIsInclusive(t *testing.T) {
	start := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	r := DateRange{Start: start, End: end}

	assert.True(t, r.Contains(start))
	assert.True(t, r.Contains(end))
	assert.True(t, r.Contains(start.AddDate(0, 0, 3)))
	assert.False(t, r.Contains(start.Add(-time.Nanosecond)))
	assert.False(t, r.Contains(end.Add(time.Nanosecond)))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleManager.Valid())
	assert.False(t, Role("owner").Valid())
	assert.True(t, TaskStatusInProgress.Valid())
	assert.False(t, TaskStatus("blocked").Valid())
	assert.True(t, TaskPriorityUrgent.Valid())
	assert.False(t, TaskPriority("").Valid())
	assert.True(t, ReportTypeCustom.Valid())
	assert.False(t, ReportType("yearly").Valid())
}
