package entity

import (
	"slices"
	"strings"
)

// Role represents the type of account a user holds in the portal.
type Role string

const (
	// RolePatient indicates a patient account.
	RolePatient Role = "patient"
	// RoleDoctor indicates a doctor account.
	RoleDoctor Role = "doctor"
	// RoleAdmin indicates an administrator account. Admins are provisioned
	// by the backend and cannot self-register.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsKnown checks if the Role is one of the values the client understands.
func (r Role) IsKnown() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	default:
		return false
	}
}

// SelfRegisterable reports whether the role may be chosen at signup.
func (r Role) SelfRegisterable() bool {
	return slices.Contains([]Role{RolePatient, RoleDoctor}, r)
}

// ParseRole normalizes a server-provided role string. Unknown values are
// still returned as-is; callers decide whether to warn.
func ParseRole(s string) Role {
	return Role(strings.ToLower(s))
}
