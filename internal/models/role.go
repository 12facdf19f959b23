package models

import "strings"

// Role is the closed set of account roles recognized by the platform.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// NormalizeRole maps a stored role string onto the closed Role set.
// Comparison is case-insensitive; anything unrecognized is a guest.
func NormalizeRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleOwner):
		return RoleOwner
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleSuperAdmin):
		return RoleSuperAdmin
	default:
		return RoleGuest
	}
}

// IsOwnerPrivileged reports whether the role may access the owner dashboard.
func (r Role) IsOwnerPrivileged() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin reports whether the role may access the admin surface.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
