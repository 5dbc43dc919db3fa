package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// ErrTaskNotFound covers both a task that does not exist and a task owned by
// another user; callers cannot tell the two apart.
var ErrTaskNotFound = errors.New("task not found")

// TaskService coordinates owner-scoped task operations backed by the task
// repository, delegating listing to the query service.
type TaskService interface {
	Create(ctx context.Context, draft domain.Task, userID uuid.UUID) (*domain.Task, error)
	GetByID(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, updated domain.Task) (bool, error)
	Delete(ctx context.Context, taskID, userID uuid.UUID) (bool, error)
	List(ctx context.Context, filter domain.TaskFilter, page, pageSize int) (*domain.TaskPage, error)
}

type taskService struct {
	tasks   repository.TaskRepository
	queries TaskQueryService
	logger  *logrus.Logger
}

func NewTaskService(tasks repository.TaskRepository, queries TaskQueryService, logger *logrus.Logger) TaskService {
	if logger == nil {
		logger = logrus.New()
	}
	return &taskService{
		tasks:   tasks,
		queries: queries,
		logger:  logger,
	}
}

func (s *taskService) Create(ctx context.Context, draft domain.Task, userID uuid.UUID) (*domain.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errors.New("title is required")
	}

	now := time.Now().UTC()
	task := draft
	task.ID = uuid.New()
	task.UserID = userID
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.logger.Infof("task %s created by user %s", task.ID, userID)
	return &task, nil
}

func (s *taskService) GetByID(ctx context.Context, taskID, userID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Update overwrites the mutable fields of an existing task and refreshes its
// update timestamp. It returns false when the task is missing or belongs to a
// different owner; both cases look the same from the outside.
func (s *taskService) Update(ctx context.Context, updated domain.Task) (bool, error) {
	current, err := s.tasks.Get(ctx, updated.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Infof("task %s not found for update", updated.ID)
			return false, nil
		}
		return false, err
	}
	if current.UserID != updated.UserID {
		s.logger.Warnf("user %s attempted to update task %s owned by another user", updated.UserID, updated.ID)
		return false, nil
	}

	current.Title = updated.Title
	current.Description = updated.Description
	current.DueDate = updated.DueDate
	current.Status = updated.Status
	current.Priority = updated.Priority
	current.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, current); err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return true, nil
}

func (s *taskService) Delete(ctx context.Context, taskID, userID uuid.UUID) (bool, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if task.UserID != userID {
		s.logger.Warnf("user %s attempted to delete task %s owned by another user", userID, taskID)
		return false, nil
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete task: %w", err)
	}

	s.logger.Infof("task %s deleted by user %s", taskID, userID)
	return true, nil
}

func (s *taskService) List(ctx context.Context, filter domain.TaskFilter, page, pageSize int) (*domain.TaskPage, error) {
	return s.queries.Query(ctx, filter, page, pageSize)
}
