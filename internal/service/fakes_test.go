package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	users       []domain.User
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.createCalls++
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return fmt.Errorf("insert user: %w", repository.ErrAlreadyExists)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

// fakeHasher avoids bcrypt cost in service tests; the real hasher has its own
// tests.
type fakeHasher struct {
	hashCalls int
}

func (h *fakeHasher) Hash(plaintext string) (string, error) {
	h.hashCalls++
	return "digest:" + plaintext, nil
}

func (h *fakeHasher) Verify(plaintext, digest string) bool {
	return digest == "digest:"+plaintext
}

// fakeTaskRepo is an in-memory repository.TaskRepository preserving insertion
// order, like the sqlite implementation's created_at ordering.
type fakeTaskRepo struct {
	tasks     []domain.Task
	listCalls int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{}
}

func (r *fakeTaskRepo) Init(ctx context.Context) error { return nil }

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *fakeTaskRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			task := r.tasks[i]
			return &task, nil
		}
	}
	return nil, fmt.Errorf("task: %w", repository.ErrNotFound)
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	for i := range r.tasks {
		if r.tasks[i].ID == task.ID {
			r.tasks[i] = *task
			return nil
		}
	}
	return fmt.Errorf("task: %w", repository.ErrNotFound)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("task: %w", repository.ErrNotFound)
}

func (r *fakeTaskRepo) ListByOwner(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	r.listCalls++
	var out []domain.Task
	for _, task := range r.tasks {
		if task.UserID != filter.UserID {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.DueDate != nil && !task.DueDate.Equal(*filter.DueDate) {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func dueIn(days int) time.Time {
	return time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}
