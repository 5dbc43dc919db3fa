package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// ErrInvalidPageSize is returned for a non-positive page size, for which the
// page arithmetic is undefined.
var ErrInvalidPageSize = errors.New("page size must be positive")

// TaskQueryService lists a user's tasks with filtering, ordering and
// pagination.
type TaskQueryService interface {
	Query(ctx context.Context, filter domain.TaskFilter, page, pageSize int) (*domain.TaskPage, error)
}

type taskQueryService struct {
	tasks repository.TaskRepository
}

func NewTaskQueryService(tasks repository.TaskRepository) TaskQueryService {
	return &taskQueryService{tasks: tasks}
}

// Query fetches the owner's tasks matching every present filter predicate,
// orders them, and slices out the requested 1-indexed page. A page before the
// first or past the last yields an empty list with the totals still computed.
func (s *taskQueryService) Query(ctx context.Context, filter domain.TaskFilter, page, pageSize int) (*domain.TaskPage, error) {
	if pageSize <= 0 {
		return nil, ErrInvalidPageSize
	}

	tasks, err := s.tasks.ListByOwner(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	sortTasks(tasks, filter)

	total := len(tasks)
	totalPages := (total + pageSize - 1) / pageSize

	pageTasks := []domain.Task{}
	if start := (page - 1) * pageSize; page >= 1 && start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		pageTasks = tasks[start:end]
	}

	return &domain.TaskPage{
		Tasks:      pageTasks,
		Page:       page,
		PageSize:   pageSize,
		TotalTasks: total,
		TotalPages: totalPages,
	}, nil
}

// sortTasks applies the requested orderings in place. The due date sort runs
// first and the priority sort second, so when both are set the priority order
// wins.
func sortTasks(tasks []domain.Task, filter domain.TaskFilter) {
	if filter.DueDateOrder != nil {
		asc := *filter.DueDateOrder == domain.SortAscending
		sort.SliceStable(tasks, func(i, j int) bool {
			if asc {
				return tasks[i].DueDate.Before(tasks[j].DueDate)
			}
			return tasks[j].DueDate.Before(tasks[i].DueDate)
		})
	}
	if filter.PriorityOrder != nil {
		asc := *filter.PriorityOrder == domain.SortAscending
		sort.SliceStable(tasks, func(i, j int) bool {
			if asc {
				return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
			}
			return tasks[j].Priority.Rank() < tasks[i].Priority.Rank()
		})
	}
}
