package repository

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/internal/domain"
)

// TaskRepository exposes persistence operations for Task aggregates.
// ListByOwner returns the owner's tasks matching every present predicate of
// the filter; ordering and pagination are the caller's concern.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
}
