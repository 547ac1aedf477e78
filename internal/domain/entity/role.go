// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
// A role is fixed at signup; there is no in-app role change.
type Role string

const (
	// RoleAdmin has read-only aggregate visibility across all users.
	RoleAdmin Role = "admin"
	// RoleFieldOfficer logs meetings, samples, sales and workday sessions.
	RoleFieldOfficer Role = "field_officer"
	// RoleDistributor manages sample and sale records from a fixed location context.
	RoleDistributor Role = "distributor"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleFieldOfficer, RoleDistributor:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
