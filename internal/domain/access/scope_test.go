package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notekeeper/internal/domain/access"
	"notekeeper/internal/domain/entities"
)

func TestEffectiveFilter(t *testing.T) {
	tests := []struct {
		name      string
		principal entities.Principal
		requested access.NoteFilter
		expected  access.NoteFilter
	}{
		{
			name:      "user role is pinned to own records",
			principal: entities.Principal{Email: "alice@example.com", Role: entities.RoleUser},
			requested: access.NoteFilter{TitlePattern: "shopping"},
			expected:  access.NoteFilter{TitlePattern: "shopping", Owner: "alice@example.com"},
		},
		{
			name:      "user role cannot request another owner",
			principal: entities.Principal{Email: "alice@example.com", Role: entities.RoleUser},
			requested: access.NoteFilter{TitlePattern: "shopping", Owner: "bob@example.com"},
			expected:  access.NoteFilter{TitlePattern: "shopping", Owner: "alice@example.com"},
		},
		{
			name:      "admin sees the requested filter unchanged",
			principal: entities.Principal{Email: "admin@example.com", Role: entities.RoleAdmin},
			requested: access.NoteFilter{TitlePattern: "shopping"},
			expected:  access.NoteFilter{TitlePattern: "shopping"},
		},
		{
			name:      "super_admin sees the requested filter unchanged",
			principal: entities.Principal{Email: "root@example.com", Role: entities.RoleSuperAdmin},
			requested: access.NoteFilter{TitlePattern: ""},
			expected:  access.NoteFilter{TitlePattern: ""},
		},
		{
			name:      "empty pattern still scoped for user role",
			principal: entities.Principal{Email: "alice@example.com", Role: entities.RoleUser},
			requested: access.NoteFilter{},
			expected:  access.NoteFilter{Owner: "alice@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := access.EffectiveFilter(tt.principal, tt.requested)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOwnerOnlyFilter(t *testing.T) {
	tests := []struct {
		name      string
		principal entities.Principal
		title     string
		expected  access.NoteFilter
	}{
		{
			name:      "user writes are pinned to the caller",
			principal: entities.Principal{Email: "alice@example.com", Role: entities.RoleUser},
			title:     "groceries",
			expected:  access.NoteFilter{Title: "groceries", Owner: "alice@example.com"},
		},
		{
			name:      "admin writes are pinned to the caller too",
			principal: entities.Principal{Email: "admin@example.com", Role: entities.RoleAdmin},
			title:     "groceries",
			expected:  access.NoteFilter{Title: "groceries", Owner: "admin@example.com"},
		},
		{
			name:      "super_admin writes are pinned to the caller too",
			principal: entities.Principal{Email: "root@example.com", Role: entities.RoleSuperAdmin},
			title:     "plans",
			expected:  access.NoteFilter{Title: "plans", Owner: "root@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := access.OwnerOnlyFilter(tt.principal, tt.title)
			assert.Equal(t, tt.expected, got)
		})
	}
}
