package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
	"github.com/taskgrid/task-tracker-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub task repository (the user stub lives in auth_service_test.go)
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) FindByName(_ context.Context, name string) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.Name == name {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := *task
	clone.ID = fmt.Sprintf("task_%d", r.nextID)
	r.tasks[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, update ports.TaskUpdate) error {
	t, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.ResponsiblePerson != nil {
		t.ResponsiblePerson = *update.ResponsiblePerson
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
	if update.AssigneeIDs != nil {
		t.AssigneeIDs = update.AssigneeIDs
	}
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type taskFixture struct {
	users *stubUserRepo
	tasks *stubTaskRepo
	svc   *TaskService

	admin       *domain.User
	developer   *domain.User
	guest       *domain.User
	responsible *domain.User
	assigneeA   *domain.User
	assigneeB   *domain.User
}

func newTaskFixture() *taskFixture {
	users := newStubUserRepo()
	tasks := newStubTaskRepo()

	f := &taskFixture{
		users: users,
		tasks: tasks,
		svc:   NewTaskService(users, tasks, zerolog.Nop()),
	}
	f.admin = users.add(&domain.User{Username: "admin", Email: "admin@example.com", Role: domain.RoleAdmin})
	f.developer = users.add(&domain.User{Username: "dev", Email: "dev@example.com", Role: domain.RoleDeveloper})
	f.guest = users.add(&domain.User{Username: "guest", Email: "guest@example.com", Role: domain.RoleGuest})
	f.responsible = users.add(&domain.User{Username: "lead", Email: "lead@example.com", Role: domain.RoleTeamLead})
	f.assigneeA = users.add(&domain.User{Username: "ann", Email: "ann@example.com", Role: domain.RoleUser})
	f.assigneeB = users.add(&domain.User{Username: "ben", Email: "ben@example.com", Role: domain.RoleUser})
	return f
}

func (f *taskFixture) createInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Name:                "Ship release",
		Description:         "Cut and ship the next release",
		ResponsiblePersonID: f.responsible.ID,
		Status:              domain.StatusTodo,
		Priority:            domain.PriorityHigh,
		AssigneeIDs:         []string{f.assigneeA.ID, f.assigneeB.ID},
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_Success(t *testing.T) {
	f := newTaskFixture()

	created, err := f.svc.CreateTask(context.Background(), f.admin, f.createInput())
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if created.ID == "" || created.Name != "Ship release" {
		t.Fatalf("unexpected summary: %+v", created)
	}
	if len(created.Assignees) != 2 {
		t.Fatalf("expected 2 resolved assignees, got %d", len(created.Assignees))
	}

	stored, err := f.tasks.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("task not persisted: %v", err)
	}
	if stored.ResponsiblePerson != f.responsible.ID {
		t.Fatalf("responsible person not stored: %+v", stored)
	}
}

func TestTaskService_Create_ForbiddenRoles(t *testing.T) {
	f := newTaskFixture()

	for _, actor := range []*domain.User{f.guest, f.developer} {
		_, err := f.svc.CreateTask(context.Background(), actor, f.createInput())
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
	if len(f.tasks.tasks) != 0 {
		t.Fatalf("forbidden create must not persist anything")
	}
}

func TestTaskService_Create_DuplicateName(t *testing.T) {
	f := newTaskFixture()

	if _, err := f.svc.CreateTask(context.Background(), f.admin, f.createInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := f.svc.CreateTask(context.Background(), f.admin, f.createInput())
	if !errors.Is(err, domain.ErrDuplicateTaskName) {
		t.Fatalf("expected ErrDuplicateTaskName, got %v", err)
	}
}

func TestTaskService_Create_ResponsiblePersonMissing(t *testing.T) {
	f := newTaskFixture()

	input := f.createInput()
	input.ResponsiblePersonID = "user_missing"
	_, err := f.svc.CreateTask(context.Background(), f.admin, input)
	if !errors.Is(err, domain.ErrResponsiblePersonNotFound) {
		t.Fatalf("expected ErrResponsiblePersonNotFound, got %v", err)
	}
}

// Assignee ids that match no user are dropped without error; the lookup
// collaborator returns matches only.
func TestTaskService_Create_UnknownAssigneesDropped(t *testing.T) {
	f := newTaskFixture()

	input := f.createInput()
	input.AssigneeIDs = []string{f.assigneeA.ID, "user_missing", "another_missing"}

	created, err := f.svc.CreateTask(context.Background(), f.admin, input)
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	if len(created.Assignees) != 1 || created.Assignees[0].ID != f.assigneeA.ID {
		t.Fatalf("expected only the known assignee, got %+v", created.Assignees)
	}
}

func TestTaskService_Create_Defaults(t *testing.T) {
	f := newTaskFixture()

	input := f.createInput()
	input.Status = ""
	input.Priority = ""

	created, err := f.svc.CreateTask(context.Background(), f.admin, input)
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}
	stored, _ := f.tasks.FindByID(context.Background(), created.ID)
	if stored.Status != domain.StatusTodo || stored.Priority != domain.PriorityMedium {
		t.Fatalf("expected TODO/Medium defaults, got %s/%s", stored.Status, stored.Priority)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestTaskService_Update_PartialStatusOnly(t *testing.T) {
	f := newTaskFixture()
	created, err := f.svc.CreateTask(context.Background(), f.admin, f.createInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	before, _ := f.tasks.FindByID(context.Background(), created.ID)

	done := domain.StatusDone
	updated, err := f.svc.UpdateTask(context.Background(), f.developer, created.ID,
		ports.UpdateTaskInput{Status: &done})
	if err != nil {
		t.Fatalf("UpdateTask returned error: %v", err)
	}

	after, _ := f.tasks.FindByID(context.Background(), created.ID)
	if after.Status != domain.StatusDone {
		t.Fatalf("status not applied: %s", after.Status)
	}
	if after.Name != before.Name || after.Description != before.Description {
		t.Fatalf("untouched fields changed: %+v", after)
	}
	if len(after.AssigneeIDs) != len(before.AssigneeIDs) {
		t.Fatalf("assignees must be untouched by a status-only update")
	}
	if updated.ResponsiblePerson.ID != f.responsible.ID {
		t.Fatalf("summary must carry the resolved responsible person")
	}
}

func TestTaskService_Update_GuestForbidden(t *testing.T) {
	f := newTaskFixture()
	created, _ := f.svc.CreateTask(context.Background(), f.admin, f.createInput())

	done := domain.StatusDone
	_, err := f.svc.UpdateTask(context.Background(), f.guest, created.ID,
		ports.UpdateTaskInput{Status: &done})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for guest, got %v", err)
	}
}

func TestTaskService_Update_TaskNotFound(t *testing.T) {
	f := newTaskFixture()

	done := domain.StatusDone
	_, err := f.svc.UpdateTask(context.Background(), f.admin, "task_missing",
		ports.UpdateTaskInput{Status: &done})
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Update_NameConflictWithOtherTask(t *testing.T) {
	f := newTaskFixture()
	first, _ := f.svc.CreateTask(context.Background(), f.admin, f.createInput())

	other := f.createInput()
	other.Name = "Write docs"
	second, err := f.svc.CreateTask(context.Background(), f.admin, other)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}

	name := first.Name
	_, err = f.svc.UpdateTask(context.Background(), f.admin, second.ID,
		ports.UpdateTaskInput{Name: &name})
	if !errors.Is(err, domain.ErrDuplicateTaskName) {
		t.Fatalf("expected ErrDuplicateTaskName, got %v", err)
	}
}

// Re-submitting the task's current name is not a conflict with itself.
func TestTaskService_Update_OwnNameIsNotAConflict(t *testing.T) {
	f := newTaskFixture()
	created, _ := f.svc.CreateTask(context.Background(), f.admin, f.createInput())

	name := created.Name
	if _, err := f.svc.UpdateTask(context.Background(), f.admin, created.ID,
		ports.UpdateTaskInput{Name: &name}); err != nil {
		t.Fatalf("updating a task to its own name must succeed, got %v", err)
	}
}

func TestTaskService_Update_ReplacesAssigneeSet(t *testing.T) {
	f := newTaskFixture()
	created, _ := f.svc.CreateTask(context.Background(), f.admin, f.createInput())

	updated, err := f.svc.UpdateTask(context.Background(), f.admin, created.ID,
		ports.UpdateTaskInput{AssigneeIDs: []string{f.assigneeB.ID}})
	if err != nil {
		t.Fatalf("UpdateTask returned error: %v", err)
	}
	if len(updated.Assignees) != 1 || updated.Assignees[0].ID != f.assigneeB.ID {
		t.Fatalf("expected the prior set to be fully replaced, got %+v", updated.Assignees)
	}

	stored, _ := f.tasks.FindByID(context.Background(), created.ID)
	if len(stored.AssigneeIDs) != 1 || stored.AssigneeIDs[0] != f.assigneeB.ID {
		t.Fatalf("replacement not persisted: %+v", stored.AssigneeIDs)
	}
}

func TestTaskService_Update_NewResponsiblePersonMissing(t *testing.T) {
	f := newTaskFixture()
	created, _ := f.svc.CreateTask(context.Background(), f.admin, f.createInput())

	missing := "user_missing"
	_, err := f.svc.UpdateTask(context.Background(), f.admin, created.ID,
		ports.UpdateTaskInput{ResponsiblePersonID: &missing})
	if !errors.Is(err, domain.ErrResponsiblePersonNotFound) {
		t.Fatalf("expected ErrResponsiblePersonNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestTaskService_Delete_Success(t *testing.T) {
	f := newTaskFixture()
	created, _ := f.svc.CreateTask(context.Background(), f.admin, f.createInput())

	deleted, err := f.svc.DeleteTask(context.Background(), f.admin, created.ID)
	if err != nil {
		t.Fatalf("DeleteTask returned error: %v", err)
	}
	if deleted.Name != created.Name {
		t.Fatalf("unexpected summary: %+v", deleted)
	}
	if len(deleted.Assignees) != 2 {
		t.Fatalf("summary must carry the prior assignees, got %d", len(deleted.Assignees))
	}

	if _, err := f.tasks.FindByID(context.Background(), created.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("task still present after delete")
	}
}

// Deleting a nonexistent id is an error, not a silent no-op.
func TestTaskService_Delete_NotFound(t *testing.T) {
	f := newTaskFixture()

	_, err := f.svc.DeleteTask(context.Background(), f.admin, "task_missing")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_Delete_ForbiddenRoles(t *testing.T) {
	f := newTaskFixture()
	created, _ := f.svc.CreateTask(context.Background(), f.admin, f.createInput())

	for _, actor := range []*domain.User{f.guest, f.developer} {
		if _, err := f.svc.DeleteTask(context.Background(), actor, created.ID); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", actor.Role, err)
		}
	}
	if _, err := f.tasks.FindByID(context.Background(), created.ID); err != nil {
		t.Fatalf("task must survive forbidden deletes")
	}
}
