// Copyright (c) 2026 OpsDesk. All rights reserved.

package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/portal/internal/platform/apperr"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	appErr := apperr.As(err)
	require.NotNil(t, appErr)

	fields := make(map[string]string, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields[detail.Field] = detail.Message
	}
	return fields
}

func TestLoginFormValidate(t *testing.T) {
	assert.NoError(t, LoginForm{Email: "ana@opsdesk.app", Password: "x"}.Validate())

	err := LoginForm{Email: "not-an-email", Password: ""}.Validate()
	require.Error(t, err)
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRegistrationFormValidate(t *testing.T) {
	valid := RegistrationForm{
		Name:            "Ana",
		Email:           "ana@opsdesk.app",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		DepartmentID:    "d1",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*RegistrationForm)
		field  string
	}{
		{"missing name", func(f *RegistrationForm) { f.Name = "  " }, "name"},
		{"short password", func(f *RegistrationForm) { f.Password = "short"; f.ConfirmPassword = "short" }, "password"},
		{"mismatched confirmation", func(f *RegistrationForm) { f.ConfirmPassword = "different1" }, "confirmPassword"},
		{"missing department", func(f *RegistrationForm) { f.DepartmentID = "" }, "departmentId"},
		{"placeholder department", func(f *RegistrationForm) { f.DepartmentID = departmentPlaceholder }, "departmentId"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := valid
			tc.mutate(&form)
			err := form.Validate()
			require.Error(t, err)
			assert.Contains(t, fieldErrors(t, err), tc.field)
		})
	}
}

func TestResetPasswordFormValidate(t *testing.T) {
	valid := ResetPasswordForm{Token: "tok", Password: "secret123", ConfirmPassword: "secret123"}
	assert.NoError(t, valid.Validate())

	noToken := valid
	noToken.Token = ""
	require.Error(t, noToken.Validate())
	assert.Contains(t, fieldErrors(t, noToken.Validate()), "token")

	mismatch := valid
	mismatch.ConfirmPassword = "other1234"
	require.Error(t, mismatch.Validate())
	assert.Contains(t, fieldErrors(t, mismatch.Validate()), "confirmPassword")
}

func TestEchoClearsSecrets(t *testing.T) {
	login := LoginForm{Email: "ana@opsdesk.app", Password: "secret123"}.Echo()
	assert.Equal(t, "ana@opsdesk.app", login.Email)
	assert.Empty(t, login.Password)

	registration := RegistrationForm{
		Name:            "Ana",
		Email:           "ana@opsdesk.app",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		DepartmentID:    "d1",
	}.Echo()
	assert.Equal(t, "Ana", registration.Name)
	assert.Equal(t, "d1", registration.DepartmentID)
	assert.Empty(t, registration.Password)
	assert.Empty(t, registration.ConfirmPassword)

	reset := ResetPasswordForm{Token: "tok", Password: "secret123", ConfirmPassword: "secret123"}.Echo()
	assert.Equal(t, "tok", reset.Token)
	assert.Empty(t, reset.Password)
	assert.Empty(t, reset.ConfirmPassword)
}
