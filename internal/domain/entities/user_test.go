package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/domain/entities"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected entities.Role
		wantErr  bool
	}{
		{name: "user role", input: "user", expected: entities.RoleUser},
		{name: "admin role", input: "admin", expected: entities.RoleAdmin},
		{name: "super_admin role", input: "super_admin", expected: entities.RoleSuperAdmin},
		{name: "unknown role", input: "owner", wantErr: true},
		{name: "empty role", input: "", wantErr: true},
		{name: "case sensitive", input: "Admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := entities.ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, entities.ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, role)
		})
	}
}

func TestRoleElevated(t *testing.T) {
	assert.False(t, entities.RoleUser.Elevated())
	assert.True(t, entities.RoleAdmin.Elevated())
	assert.True(t, entities.RoleSuperAdmin.Elevated())
}

func TestUserProfile(t *testing.T) {
	createdAt := time.Now().UTC()
	user := &entities.User{
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         entities.RoleUser,
		CreatedAt:    createdAt,
	}

	profile := user.Profile()

	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, user.Role, profile.Role)
	assert.Equal(t, createdAt, profile.CreatedAt)
}
