package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
	"github.com/taskgrid/task-tracker-api/internal/core/ports"
)

// TaskService implements the role-gated task mutation flows. Every flow is
// fail-fast: the first failing precondition returns immediately and nothing is
// written until all checks and resolutions have passed.
type TaskService struct {
	users  ports.UserRepository
	tasks  ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(users ports.UserRepository, tasks ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{users: users, tasks: tasks, logger: logger}
}

// CreateTask creates a task after the role gate, name-uniqueness check and
// participant resolution. Assignee ids that match no user are silently
// dropped; the repository lookup returns matches only.
func (s *TaskService) CreateTask(ctx context.Context, actor *domain.User, input ports.CreateTaskInput) (*ports.CreatedTask, error) {
	if err := domain.AssertAllowed(actor.Role, domain.ActionCreateTask); err != nil {
		return nil, err
	}
	if err := s.assertNameFree(ctx, input.Name); err != nil {
		return nil, err
	}

	responsible, err := s.resolveResponsiblePerson(ctx, input.ResponsiblePersonID)
	if err != nil {
		return nil, err
	}

	assignees, err := s.users.FindByIDs(ctx, input.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.StatusTodo
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Name:              input.Name,
		Description:       input.Description,
		ResponsiblePerson: responsible.ID,
		Status:            status,
		Priority:          priority,
		AssigneeIDs:       userIDs(assignees),
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("task", input.Name).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task", created.Name).Str("actor", actor.Username).Msg("task created")

	return &ports.CreatedTask{
		ID:        created.ID,
		Name:      created.Name,
		Assignees: toAssignees(assignees),
	}, nil
}

// UpdateTask applies a partial update. Only fields present in input are
// touched; a supplied assignee list replaces the full prior set.
func (s *TaskService) UpdateTask(ctx context.Context, actor *domain.User, taskID string, input ports.UpdateTaskInput) (*ports.UpdatedTask, error) {
	if err := domain.AssertAllowed(actor.Role, domain.ActionUpdateTask); err != nil {
		return nil, err
	}

	existing, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	// A new name must not collide with a different task. Re-submitting the
	// task's current name is not a conflict.
	if input.Name != nil && *input.Name != existing.Name {
		if err := s.assertNameFree(ctx, *input.Name); err != nil {
			return nil, err
		}
	}

	update := ports.TaskUpdate{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
	}

	if input.ResponsiblePersonID != nil {
		responsible, err := s.resolveResponsiblePerson(ctx, *input.ResponsiblePersonID)
		if err != nil {
			return nil, err
		}
		update.ResponsiblePerson = &responsible.ID
	}

	if len(input.AssigneeIDs) > 0 {
		replacement, err := s.users.FindByIDs(ctx, input.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		update.AssigneeIDs = userIDs(replacement)
	}

	if err := s.tasks.Update(ctx, taskID, update); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to update task")
		return nil, err
	}

	updated, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	responsible, err := s.resolveResponsiblePerson(ctx, updated.ResponsiblePerson)
	if err != nil {
		return nil, err
	}

	assignees, err := s.users.FindByIDs(ctx, updated.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task", updated.Name).Str("actor", actor.Username).Msg("task updated")

	return &ports.UpdatedTask{
		ID:                updated.ID,
		Name:              updated.Name,
		ResponsiblePerson: toAssignee(responsible),
		Assignees:         toAssignees(assignees),
	}, nil
}

// DeleteTask removes a task and returns its name and prior assignees so the
// boundary can notify them.
func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.User, taskID string) (*ports.DeletedTask, error) {
	if err := domain.AssertAllowed(actor.Role, domain.ActionDeleteTask); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	assignees, err := s.users.FindByIDs(ctx, task.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		s.logger.Error().Err(err).Str("task_id", taskID).Msg("failed to delete task")
		return nil, err
	}

	s.logger.Info().Str("task", task.Name).Str("actor", actor.Username).Msg("task deleted")

	return &ports.DeletedTask{
		Name:      task.Name,
		Assignees: toAssignees(assignees),
	}, nil
}

func (s *TaskService) assertNameFree(ctx context.Context, name string) error {
	_, err := s.tasks.FindByName(ctx, name)
	if err == nil {
		return domain.ErrDuplicateTaskName
	}
	if !errors.Is(err, domain.ErrTaskNotFound) {
		return err
	}
	return nil
}

func (s *TaskService) resolveResponsiblePerson(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrResponsiblePersonNotFound
		}
		return nil, err
	}
	return user, nil
}

func userIDs(users []*domain.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func toAssignee(u *domain.User) ports.Assignee {
	return ports.Assignee{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toAssignees(users []*domain.User) []ports.Assignee {
	out := make([]ports.Assignee, 0, len(users))
	for _, u := range users {
		out = append(out, toAssignee(u))
	}
	return out
}
