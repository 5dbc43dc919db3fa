package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// ParseTaskStatus converts a wire value to a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Rank returns the natural ordering of a priority: low < medium < high.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityLow:
		return 0
	case TaskPriorityMedium:
		return 1
	case TaskPriorityHigh:
		return 2
	}
	return -1
}

// ParseTaskPriority converts a wire value to a TaskPriority.
func ParseTaskPriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return TaskPriority(s), nil
	}
	return "", fmt.Errorf("unknown task priority %q", s)
}

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder converts a wire value to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortAscending, SortDescending:
		return SortOrder(s), nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Task is a unit of work owned by exactly one user. Ownership is fixed at
// creation and never changes afterwards.
type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	DueDate     time.Time
	Status      TaskStatus
	Priority    TaskPriority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilter narrows a task listing to one owner plus any combination of
// optional predicates. Nil fields impose no constraint; present fields are
// ANDed together.
type TaskFilter struct {
	UserID        uuid.UUID
	Status        *TaskStatus
	Priority      *TaskPriority
	DueDate       *time.Time
	DueDateOrder  *SortOrder
	PriorityOrder *SortOrder
}

// TaskPage is one page of a filtered, sorted task listing together with the
// pre-pagination totals.
type TaskPage struct {
	Tasks      []Task
	Page       int
	PageSize   int
	TotalTasks int
	TotalPages int
}
