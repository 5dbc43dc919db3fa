package repository

import (
	"context"

	"github.com/google/uuid"

	"tasktracker/internal/domain"
)

// UserRepository defines persistence operations for User entities. Lookups
// that miss return ErrNotFound; Create returns ErrAlreadyExists when the
// username or email is taken.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
