package ports

import (
	"context"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
)

// TaskUpdate carries a partial update. A nil field is left untouched by the
// repository; a non-nil field overwrites the stored value. AssigneeIDs, when
// non-nil, replaces the full prior assignee set atomically.
type TaskUpdate struct {
	Name              *string
	Description       *string
	ResponsiblePerson *string
	Status            *domain.TaskStatus
	Priority          *domain.TaskPriority
	AssigneeIDs       []string
}

// TaskRepository defines persistence operations for tasks.
// Lookup methods return domain.ErrTaskNotFound when no task matches.
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByName(ctx context.Context, name string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id string, update TaskUpdate) error
	Delete(ctx context.Context, id string) error
}
