// Copyright (c) 2026 OpsDesk. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/portal/internal/platform/apperr"
	"github.com/opsdesk/portal/internal/platform/validate"
)

func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Ada Lovelace", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"plain_address", "a@b.com", false},
		{"with_display_name", "Ada <ada@corp.example>", false},
		{"missing_at", "not-an-email", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

func TestValidator_MinLen_Unicode(t *testing.T) {
	v := &validate.Validator{}
	// 8 runes, more than 8 bytes. Rune count is what matters for passwords.
	v.MinLen("password", "пароль12", 8)
	assert.False(t, v.HasErrors())

	v.MinLen("password", "short", 8)
	assert.True(t, v.HasErrors())
}

func TestValidator_Equals(t *testing.T) {
	v := &validate.Validator{}
	v.Equals("confirmPassword", "hunter22", "hunter22", "Passwords do not match")
	assert.False(t, v.HasErrors())

	v.Equals("confirmPassword", "hunter22", "hunter23", "Passwords do not match")
	require.True(t, v.HasErrors())

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "confirmPassword", ae.Details[0].Field)
	assert.Equal(t, "Passwords do not match", ae.Details[0].Message)
}

func TestValidator_ChainCollectsAllErrors(t *testing.T) {
	v := &validate.Validator{}
	v.Required("email", "").
		MinLen("password", "abc", 8).
		Custom("departmentId", true, "Please choose a department")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}
