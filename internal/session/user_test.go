// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "ADMIN", want: RoleAdmin},
		{input: "EMPLOYEE", want: RoleEmployee},
		{input: "USER", want: RoleUser},
		{input: "admin", wantErr: true},
		{input: "SUPERUSER", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			role, err := ParseRole(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, role)
		})
	}
}

func TestUserValidate(t *testing.T) {
	valid := User{ID: "u1", Email: "ana@opsdesk.app", Name: "Ana", Role: RoleAdmin}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = ""
	assert.Error(t, missingID.Validate())

	missingEmail := valid
	missingEmail.Email = ""
	assert.Error(t, missingEmail.Validate())

	badRole := valid
	badRole.Role = Role("OWNER")
	assert.Error(t, badRole.Validate())
}
