package domain

import (
	"errors"
	"time"
)

// Role determines which task actions a user may perform.
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleProjectManager Role = "Project Manager"
	RoleTeamLead       Role = "Team Lead"
	RoleDeveloper      Role = "Developer"
	RoleQA             Role = "QA"
	RoleUser           Role = "User"
	RoleGuest          Role = "Guest"
)

// Roles lists every known role.
var Roles = []Role{
	RoleAdmin,
	RoleProjectManager,
	RoleTeamLead,
	RoleDeveloper,
	RoleQA,
	RoleUser,
	RoleGuest,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidTokenType = errors.New("invalid token type")
var ErrDuplicateUsername = errors.New("user with this username already exists")
var ErrDuplicateEmail = errors.New("user with this email already exists")
var ErrUserNotFound = errors.New("user not found")

// User models an authenticated actor in the system.
//
// Username and Email are globally unique. PasswordHash is opaque to every
// layer except the password hasher. Role is assigned RoleUser at registration
// and only changed by administrative action outside this service.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	TeamID       string     `json:"team_id,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
