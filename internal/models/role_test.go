package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Role
	}{
		{"lowercase owner", "owner", RoleOwner},
		{"uppercase owner", "OWNER", RoleOwner},
		{"mixed case admin", "AdMiN", RoleAdmin},
		{"super_admin", "super_admin", RoleSuperAdmin},
		{"super_admin uppercase", "SUPER_ADMIN", RoleSuperAdmin},
		{"surrounding whitespace", "  owner  ", RoleOwner},
		{"unknown role", "moderator", RoleGuest},
		{"empty string", "", RoleGuest},
		{"guest", "guest", RoleGuest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRole(tt.input))
		})
	}
}

func TestRole_IsOwnerPrivileged(t *testing.T) {
	assert.True(t, RoleOwner.IsOwnerPrivileged())
	assert.True(t, RoleAdmin.IsOwnerPrivileged())
	assert.True(t, RoleSuperAdmin.IsOwnerPrivileged())
	assert.False(t, RoleGuest.IsOwnerPrivileged())
}

func TestRole_IsAdmin(t *testing.T) {
	assert.False(t, RoleOwner.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.True(t, RoleSuperAdmin.IsAdmin())
	assert.False(t, RoleGuest.IsAdmin())
}
