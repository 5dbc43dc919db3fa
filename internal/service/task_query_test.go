package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/domain"
)

func seedTask(t *testing.T, repo *fakeTaskRepo, owner uuid.UUID, title string, status domain.TaskStatus, priority domain.TaskPriority, due time.Time) domain.Task {
	t.Helper()

	task := domain.Task{
		ID:        uuid.New(),
		UserID:    owner,
		Title:     title,
		Status:    status,
		Priority:  priority,
		DueDate:   due,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), &task); err != nil {
		t.Fatalf("failed to seed task %s: %v", title, err)
	}
	return task
}

func TestQueryRejectsNonPositivePageSize(t *testing.T) {
	t.Parallel()

	svc := NewTaskQueryService(newFakeTaskRepo())
	filter := domain.TaskFilter{UserID: uuid.New()}

	for _, pageSize := range []int{0, -1, -10} {
		if _, err := svc.Query(context.Background(), filter, 1, pageSize); !errors.Is(err, ErrInvalidPageSize) {
			t.Fatalf("pageSize %d: expected ErrInvalidPageSize, got %v", pageSize, err)
		}
	}
}

func TestQueryPaginationArithmetic(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	owner := uuid.New()
	for i := 0; i < 5; i++ {
		seedTask(t, repo, owner, "task", domain.TaskStatusPending, domain.TaskPriorityMedium, dueIn(i))
	}
	svc := NewTaskQueryService(repo)
	filter := domain.TaskFilter{UserID: owner}

	cases := []struct {
		page      int
		wantTasks int
	}{
		{1, 2},
		{2, 2},
		{3, 1},
		{4, 0},
		{0, 0},
		{-1, 0},
	}

	for _, tc := range cases {
		result, err := svc.Query(context.Background(), filter, tc.page, 2)
		if err != nil {
			t.Fatalf("page %d: Query returned error: %v", tc.page, err)
		}
		if len(result.Tasks) != tc.wantTasks {
			t.Fatalf("page %d: expected %d tasks, got %d", tc.page, tc.wantTasks, len(result.Tasks))
		}
		if result.TotalTasks != 5 {
			t.Fatalf("page %d: expected totalTasks 5, got %d", tc.page, result.TotalTasks)
		}
		if result.TotalPages != 3 {
			t.Fatalf("page %d: expected totalPages 3, got %d", tc.page, result.TotalPages)
		}
		if result.Page != tc.page || result.PageSize != 2 {
			t.Fatalf("page %d: expected echoed page/pageSize, got %d/%d", tc.page, result.Page, result.PageSize)
		}
	}
}

func TestQueryFiltersAreANDed(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	owner := uuid.New()
	other := uuid.New()
	due := dueIn(1)

	match := seedTask(t, repo, owner, "match", domain.TaskStatusPending, domain.TaskPriorityHigh, due)
	seedTask(t, repo, owner, "wrong status", domain.TaskStatusDone, domain.TaskPriorityHigh, due)
	seedTask(t, repo, owner, "wrong priority", domain.TaskStatusPending, domain.TaskPriorityLow, due)
	seedTask(t, repo, owner, "wrong due date", domain.TaskStatusPending, domain.TaskPriorityHigh, dueIn(2))
	seedTask(t, repo, other, "other owner", domain.TaskStatusPending, domain.TaskPriorityHigh, due)

	svc := NewTaskQueryService(repo)
	status := domain.TaskStatusPending
	priority := domain.TaskPriorityHigh
	filter := domain.TaskFilter{UserID: owner, Status: &status, Priority: &priority, DueDate: &due}

	result, err := svc.Query(context.Background(), filter, 1, 10)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.TotalTasks != 1 || len(result.Tasks) != 1 {
		t.Fatalf("expected exactly one match, got %d", result.TotalTasks)
	}
	if result.Tasks[0].ID != match.ID {
		t.Fatalf("expected task %s, got %s", match.ID, result.Tasks[0].ID)
	}
}

func TestQueryAbsentPredicatesImposeNoConstraint(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	owner := uuid.New()
	seedTask(t, repo, owner, "a", domain.TaskStatusPending, domain.TaskPriorityLow, dueIn(1))
	seedTask(t, repo, owner, "b", domain.TaskStatusDone, domain.TaskPriorityHigh, dueIn(2))
	seedTask(t, repo, owner, "c", domain.TaskStatusInProgress, domain.TaskPriorityMedium, dueIn(3))

	svc := NewTaskQueryService(repo)
	result, err := svc.Query(context.Background(), domain.TaskFilter{UserID: owner}, 1, 10)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.TotalTasks != 3 {
		t.Fatalf("expected all 3 tasks, got %d", result.TotalTasks)
	}
}

func TestQuerySortsByDueDate(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	owner := uuid.New()
	late := seedTask(t, repo, owner, "late", domain.TaskStatusPending, domain.TaskPriorityMedium, dueIn(3))
	early := seedTask(t, repo, owner, "early", domain.TaskStatusPending, domain.TaskPriorityMedium, dueIn(1))
	middle := seedTask(t, repo, owner, "middle", domain.TaskStatusPending, domain.TaskPriorityMedium, dueIn(2))

	svc := NewTaskQueryService(repo)

	asc := domain.SortAscending
	result, err := svc.Query(context.Background(), domain.TaskFilter{UserID: owner, DueDateOrder: &asc}, 1, 10)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	assertOrder(t, result.Tasks, early.ID, middle.ID, late.ID)

	desc := domain.SortDescending
	result, err = svc.Query(context.Background(), domain.TaskFilter{UserID: owner, DueDateOrder: &desc}, 1, 10)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	assertOrder(t, result.Tasks, late.ID, middle.ID, early.ID)
}

func TestQueryPrioritySortWinsOverDueDateSort(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	owner := uuid.New()
	// Due dates are deliberately arranged against the priority ranks: the
	// highest priority task is due last.
	low := seedTask(t, repo, owner, "low", domain.TaskStatusPending, domain.TaskPriorityLow, dueIn(1))
	medium := seedTask(t, repo, owner, "medium", domain.TaskStatusPending, domain.TaskPriorityMedium, dueIn(2))
	high := seedTask(t, repo, owner, "high", domain.TaskStatusPending, domain.TaskPriorityHigh, dueIn(3))

	svc := NewTaskQueryService(repo)
	asc := domain.SortAscending
	desc := domain.SortDescending
	filter := domain.TaskFilter{UserID: owner, DueDateOrder: &asc, PriorityOrder: &desc}

	result, err := svc.Query(context.Background(), filter, 1, 10)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	// The priority sort runs last and must dominate: the result matches a
	// priority-only descending sort of the same set.
	assertOrder(t, result.Tasks, high.ID, medium.ID, low.ID)
}

func TestQueryIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	owner := uuid.New()
	for i := 0; i < 4; i++ {
		seedTask(t, repo, owner, "task", domain.TaskStatusPending, domain.TaskPriorityMedium, dueIn(i))
	}

	svc := NewTaskQueryService(repo)
	desc := domain.SortDescending
	filter := domain.TaskFilter{UserID: owner, DueDateOrder: &desc}

	first, err := svc.Query(context.Background(), filter, 1, 2)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	second, err := svc.Query(context.Background(), filter, 1, 2)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if first.TotalTasks != second.TotalTasks || first.TotalPages != second.TotalPages {
		t.Fatal("expected identical totals on repeated queries")
	}
	if len(first.Tasks) != len(second.Tasks) {
		t.Fatal("expected identical page lengths on repeated queries")
	}
	for i := range first.Tasks {
		if first.Tasks[i].ID != second.Tasks[i].ID {
			t.Fatalf("position %d: expected identical ordering on repeated queries", i)
		}
	}
}

func assertOrder(t *testing.T, tasks []domain.Task, want ...uuid.UUID) {
	t.Helper()

	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	for i := range want {
		if tasks[i].ID != want[i] {
			t.Fatalf("position %d: expected task %s, got %s", i, want[i], tasks[i].ID)
		}
	}
}
