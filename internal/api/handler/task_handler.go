package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskgrid/task-tracker-api/internal/api/metrics"
	"github.com/taskgrid/task-tracker-api/internal/core/domain"
	"github.com/taskgrid/task-tracker-api/internal/core/ports"
)

// TaskHandler handles the role-gated task mutation endpoints. After a
// successful mutation it notifies the affected users; notification failures
// are logged by the notifier and never fail the request.
type TaskHandler struct {
	service  ports.TaskService
	notifier ports.Notifier
}

func NewTaskHandler(service ports.TaskService, notifier ports.Notifier) *TaskHandler {
	return &TaskHandler{service: service, notifier: notifier}
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task to create"
// @Success      201   {object}  createTaskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.CreateTask(c.Request().Context(), actor, ports.CreateTaskInput{
		Name:                req.Name,
		Description:         req.Description,
		ResponsiblePersonID: req.ResponsiblePersonID,
		Status:              domain.TaskStatus(req.Status),
		Priority:            domain.TaskPriority(req.Priority),
		AssigneeIDs:         req.AssigneeIDs,
	})
	if err != nil {
		metrics.TaskMutationsTotal.WithLabelValues("create", mutationResult(err)).Inc()
		return err
	}
	metrics.TaskMutationsTotal.WithLabelValues("create", "ok").Inc()

	h.notifier.Send(c.Request().Context(), assigneeEmails(created.Assignees),
		"Task Created!", fmt.Sprintf("Task: %s has been created!", created.Name))

	return c.JSON(http.StatusCreated, createTaskResponse{
		ID:        created.ID,
		Name:      created.Name,
		Assignees: toAssigneeResponses(created.Assignees),
	})
}

// Update handles PUT /v1/tasks/:id. Only fields present in the request body
// are applied; everything else is left untouched.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  updateTaskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateTaskInput{
		Name:                req.Name,
		Description:         req.Description,
		ResponsiblePersonID: req.ResponsiblePersonID,
		AssigneeIDs:         req.AssigneeIDs,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	updated, err := h.service.UpdateTask(c.Request().Context(), actor, c.Param("id"), input)
	if err != nil {
		metrics.TaskMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return err
	}
	metrics.TaskMutationsTotal.WithLabelValues("update", "ok").Inc()

	// The responsible person is notified alongside the assignees, but only
	// when the task still has assignees after the update.
	if len(updated.Assignees) > 0 {
		recipients := append(assigneeEmails(updated.Assignees), updated.ResponsiblePerson.Email)
		h.notifier.Send(c.Request().Context(), recipients,
			"Task Changed!", fmt.Sprintf("Task: %q updated!", updated.Name))
	}

	return c.JSON(http.StatusOK, updateTaskResponse{
		ID:                updated.ID,
		Name:              updated.Name,
		ResponsiblePerson: assigneeResponse(updated.ResponsiblePerson),
		Assignees:         toAssigneeResponses(updated.Assignees),
	})
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Task id"
// @Success      200 {object}  deleteTaskResponse
// @Failure      401 {object}  errorResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.DeleteTask(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		metrics.TaskMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
		return err
	}
	metrics.TaskMutationsTotal.WithLabelValues("delete", "ok").Inc()

	h.notifier.Send(c.Request().Context(), assigneeEmails(deleted.Assignees),
		"Task Changed!", fmt.Sprintf("Task: %q deleted!", deleted.Name))

	return c.JSON(http.StatusOK, deleteTaskResponse{
		Name:      deleted.Name,
		Assignees: toAssigneeResponses(deleted.Assignees),
	})
}

func mutationResult(err error) string {
	if errors.Is(err, domain.ErrForbidden) {
		return "forbidden"
	}
	return "error"
}

func assigneeEmails(assignees []ports.Assignee) []string {
	emails := make([]string, 0, len(assignees))
	for _, a := range assignees {
		emails = append(emails, a.Email)
	}
	return emails
}

func toAssigneeResponses(assignees []ports.Assignee) []assigneeResponse {
	out := make([]assigneeResponse, 0, len(assignees))
	for _, a := range assignees {
		out = append(out, assigneeResponse(a))
	}
	return out
}
