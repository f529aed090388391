// Copyright (c) 2026 OpsDesk. All rights reserved.

package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdesk/portal/internal/session"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name      string
		role      session.Role
		permitted []session.Role
		want      bool
	}{
		{"open region admits any role", session.RoleUser, nil, true},
		{"matching role passes", session.RoleAdmin, []session.Role{session.RoleAdmin}, true},
		{"non-matching role is blocked", session.RoleUser, []session.Role{session.RoleAdmin}, false},
		{"employee blocked from admin region", session.RoleEmployee, []session.Role{session.RoleAdmin}, false},
		{"any listed role passes", session.RoleEmployee, []session.Role{session.RoleAdmin, session.RoleEmployee}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allowed(tc.role, tc.permitted...))
		})
	}
}

func TestVisibleOmitsGatedSections(t *testing.T) {
	sections := []Section[string]{
		{Content: "overview"},
		{Content: "user-management", Roles: []session.Role{session.RoleAdmin}},
		{Content: "reports", Roles: []session.Role{session.RoleAdmin, session.RoleEmployee}},
	}

	assert.Equal(t, []string{"overview", "user-management", "reports"},
		Visible(session.RoleAdmin, sections))
	assert.Equal(t, []string{"overview", "reports"},
		Visible(session.RoleEmployee, sections))

	// The gated sections are absent, not present-but-empty.
	assert.Equal(t, []string{"overview"},
		Visible(session.RoleUser, sections))
}
