package types

import "fmt"

// Role represents a user's role in the role hierarchy
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleMember  Role = "MEMBER"
	RoleViewer  Role = "VIEWER"
)

// AllRoles returns all valid roles ordered by privilege, highest first
func AllRoles() []Role {
	return []Role{
		RoleOwner,
		RoleAdmin,
		RoleManager,
		RoleMember,
		RoleViewer,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner,
		RoleAdmin,
		RoleManager,
		RoleMember,
		RoleViewer:
		return true
	default:
		return false
	}
}

// Level returns the hierarchy level of the role. Unknown roles map to 0.
func (r Role) Level() int {
	switch r {
	case RoleOwner:
		return 5
	case RoleAdmin:
		return 4
	case RoleManager:
		return 3
	case RoleMember:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// Normalize returns the role, treating empty or unknown values as RoleMember
func (r Role) Normalize() Role {
	if !r.IsValid() {
		return RoleMember
	}
	return r
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
