package ports

import (
	"context"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	Name                string
	Description         string
	ResponsiblePersonID string
	Status              domain.TaskStatus
	Priority            domain.TaskPriority
	AssigneeIDs         []string
}

// UpdateTaskInput carries a partial task update. Nil fields were not supplied
// by the caller and must be left untouched. A nil AssigneeIDs slice means the
// assignee set is not being replaced.
type UpdateTaskInput struct {
	Name                *string
	Description         *string
	ResponsiblePersonID *string
	Status              *domain.TaskStatus
	Priority            *domain.TaskPriority
	AssigneeIDs         []string
}

// Assignee is the resolved identity of a task participant, carried in results
// so the notification boundary can address them.
type Assignee struct {
	ID       string
	Username string
	Email    string
}

// CreatedTask is returned after a successful create.
type CreatedTask struct {
	ID        string
	Name      string
	Assignees []Assignee
}

// UpdatedTask is returned after a successful update. Assignees is the task's
// current assignee set after the update was applied.
type UpdatedTask struct {
	ID                string
	Name              string
	ResponsiblePerson Assignee
	Assignees         []Assignee
}

// DeletedTask is returned after a successful delete, carrying the prior
// assignees for notification.
type DeletedTask struct {
	Name      string
	Assignees []Assignee
}

// TaskService defines the role-gated task mutation use cases. The actor is the
// authenticated user on whose behalf the mutation runs.
type TaskService interface {
	CreateTask(ctx context.Context, actor *domain.User, input CreateTaskInput) (*CreatedTask, error)
	UpdateTask(ctx context.Context, actor *domain.User, taskID string, input UpdateTaskInput) (*UpdatedTask, error)
	DeleteTask(ctx context.Context, actor *domain.User, taskID string) (*DeletedTask, error)
}
