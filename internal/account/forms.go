// Copyright (c) 2026 OpsDesk. All rights reserved.

package account

import (
	"github.com/opsdesk/portal/internal/platform/validate"
)

// departmentPlaceholder is the selector value before the user picks a real
// department. Submitting it counts as not having chosen one.
const departmentPlaceholder = "placeholder"

const (
	passwordMinLen = 8
	nameMaxLen     = 100
)

// LoginForm is a transient credential payload. It exists only for the
// duration of one submission and is never persisted.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate applies local shape checks. A form that fails here never reaches
// the remote API.
func (f LoginForm) Validate() error {
	v := &validate.Validator{}
	v.Email("email", f.Email)
	v.Required("password", f.Password)
	return v.Err()
}

// Echo returns the form as it should be sent back on failure: the email is
// retained for correction, the password is always cleared.
func (f LoginForm) Echo() LoginForm {
	f.Password = ""
	return f
}

// RegistrationForm carries a signup submission.
type RegistrationForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DepartmentID    string `json:"departmentId"`
}

func (f RegistrationForm) Validate() error {
	v := &validate.Validator{}
	v.Required("name", f.Name)
	v.MaxLen("name", f.Name, nameMaxLen)
	v.Email("email", f.Email)
	v.MinLen("password", f.Password, passwordMinLen)
	v.Equals("confirmPassword", f.ConfirmPassword, f.Password, "Passwords do not match")
	v.Required("departmentId", f.DepartmentID)
	v.Custom("departmentId", f.DepartmentID == departmentPlaceholder, "Please choose a department")
	return v.Err()
}

func (f RegistrationForm) Echo() RegistrationForm {
	f.Password = ""
	f.ConfirmPassword = ""
	return f
}

// ForgotPasswordForm starts a reset flow.
type ForgotPasswordForm struct {
	Email string `json:"email"`
}

func (f ForgotPasswordForm) Validate() error {
	v := &validate.Validator{}
	v.Email("email", f.Email)
	return v.Err()
}

func (f ForgotPasswordForm) Echo() ForgotPasswordForm { return f }

// ResetPasswordForm completes a reset flow. The token arrives via the
// reset-password view's query parameter and is submitted with the form.
type ResetPasswordForm struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f ResetPasswordForm) Validate() error {
	v := &validate.Validator{}
	v.Required("token", f.Token)
	v.MinLen("password", f.Password, passwordMinLen)
	v.Equals("confirmPassword", f.ConfirmPassword, f.Password, "Passwords do not match")
	return v.Err()
}

func (f ResetPasswordForm) Echo() ResetPasswordForm {
	f.Password = ""
	f.ConfirmPassword = ""
	return f
}
