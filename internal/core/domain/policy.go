package domain

import (
	"errors"
	"fmt"
)

var ErrForbidden = errors.New("access forbidden")

// Action is a permission-gated operation on tasks.
type Action string

const (
	ActionCreateTask Action = "create task"
	ActionUpdateTask Action = "update task"
	ActionDeleteTask Action = "delete task"
)

// policy is the static role → action table. It is read-only after init and
// therefore safe to share across requests.
var policy = map[Action][]Role{
	ActionCreateTask: {RoleAdmin, RoleProjectManager, RoleTeamLead},
	ActionUpdateTask: {RoleAdmin, RoleProjectManager, RoleTeamLead, RoleDeveloper, RoleQA, RoleUser},
	ActionDeleteTask: {RoleAdmin, RoleProjectManager, RoleTeamLead},
}

// IsAllowed reports whether role is in the allowed set. Pure function, no I/O.
func IsAllowed(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// AssertAllowed checks role against the static policy for action and returns
// ErrForbidden (wrapped with the action name) when the role is not permitted.
// It is the sole gate in front of every task mutation.
func AssertAllowed(role Role, action Action) error {
	if !IsAllowed(role, policy[action]) {
		return fmt.Errorf("%w: %s", ErrForbidden, action)
	}
	return nil
}
