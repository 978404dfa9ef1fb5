package domain

import "errors"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

var ErrTaskNotFound = errors.New("task not found")
var ErrDuplicateTaskName = errors.New("task with this name already exists")
var ErrResponsiblePersonNotFound = errors.New("responsible user not found")

// Task is the core aggregate of the tracker. Name is globally unique.
// ResponsiblePerson and AssigneeIDs reference User ids; the service layer
// validates them before any write.
type Task struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	ResponsiblePerson string       `json:"responsible_person"`
	Status            TaskStatus   `json:"status"`
	Priority          TaskPriority `json:"priority"`
	AssigneeIDs       []string     `json:"assignee_ids"`
}
