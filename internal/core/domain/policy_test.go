package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestIsAllowed(t *testing.T) {
	allowed := []Role{RoleAdmin, RoleTeamLead}

	if !IsAllowed(RoleAdmin, allowed) {
		t.Fatalf("expected admin to be allowed")
	}
	if IsAllowed(RoleGuest, allowed) {
		t.Fatalf("expected guest to be denied")
	}
	if IsAllowed(RoleAdmin, nil) {
		t.Fatalf("empty allowed set must deny everyone")
	}
}

func TestAssertAllowed_PolicyTable(t *testing.T) {
	cases := []struct {
		role    Role
		action  Action
		allowed bool
	}{
		{RoleAdmin, ActionCreateTask, true},
		{RoleProjectManager, ActionCreateTask, true},
		{RoleTeamLead, ActionCreateTask, true},
		{RoleDeveloper, ActionCreateTask, false},
		{RoleQA, ActionCreateTask, false},
		{RoleUser, ActionCreateTask, false},
		{RoleGuest, ActionCreateTask, false},

		{RoleAdmin, ActionDeleteTask, true},
		{RoleProjectManager, ActionDeleteTask, true},
		{RoleTeamLead, ActionDeleteTask, true},
		{RoleDeveloper, ActionDeleteTask, false},
		{RoleGuest, ActionDeleteTask, false},

		{RoleAdmin, ActionUpdateTask, true},
		{RoleDeveloper, ActionUpdateTask, true},
		{RoleQA, ActionUpdateTask, true},
		{RoleUser, ActionUpdateTask, true},
		{RoleGuest, ActionUpdateTask, false},
	}

	for _, tc := range cases {
		err := AssertAllowed(tc.role, tc.action)
		if tc.allowed && err != nil {
			t.Fatalf("%s / %s: expected allowed, got %v", tc.role, tc.action, err)
		}
		if !tc.allowed {
			if !errors.Is(err, ErrForbidden) {
				t.Fatalf("%s / %s: expected ErrForbidden, got %v", tc.role, tc.action, err)
			}
			if !strings.Contains(err.Error(), string(tc.action)) {
				t.Fatalf("forbidden error should carry the action name, got %q", err.Error())
			}
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Fatalf("role %q should be valid", r)
		}
	}
	if Role("Superuser").Valid() {
		t.Fatalf("unknown role should be invalid")
	}
}
