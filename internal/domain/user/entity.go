package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Full access
	RoleRH      Role = "rh"      // Human resources: employees, presences, reports
	RoleManager Role = "manager" // Presences and reports
	RoleStaff   Role = "staff"   // Own presence only
)

// Roles lists every role the API knows about.
var Roles = []Role{RoleAdmin, RoleRH, RoleManager, RoleStaff}

func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an account as stored server side.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Identity is the authenticated profile returned at login and cached by the
// client for the lifetime of a session.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

func (i Identity) IsZero() bool {
	return i.ID == 0 && i.Username == ""
}

// Can reports whether the identity's role carries the permission.
func (i Identity) Can(permission Permission) bool {
	return HasPermission(i.Role, permission)
}
