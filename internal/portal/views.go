// Copyright (c) 2026 OpsDesk. All rights reserved.

package portal

import (
	"github.com/opsdesk/portal/internal/session"
)

// Notification is a transient, non-blocking message the shell shows as a
// toast. No error condition in the portal ever blocks the view; at worst
// the user sees one of these.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	levelInfo    = "info"
	levelWarning = "warning"
)

// View is the common wrapper around every rendered route: the view name the
// shell should mount, its model, and an optional notification.
type View struct {
	Name         string        `json:"view"`
	Model        any           `json:"model,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// LoginModel backs the login view.
type LoginModel struct {
	RegisterRoute       string `json:"registerRoute"`
	ForgotPasswordRoute string `json:"forgotPasswordRoute"`
}

// DepartmentOption is one entry of the registration department selector.
type DepartmentOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RegisterModel backs the registration view. Departments are fetched live
// so the selector always matches what the remote API will accept.
type RegisterModel struct {
	Departments []DepartmentOption `json:"departments"`
	// Preselected carries the department id matched from a ?department=
	// deep link, empty when none matched.
	Preselected string `json:"preselectedDepartmentId,omitempty"`
}

// ResetPasswordModel backs the reset view; the token is echoed into the
// form so the submission carries it back.
type ResetPasswordModel struct {
	Token string `json:"token"`
}

// FeatureCard is one dashboard tile. Cards a role may not see are absent
// from the model entirely.
type FeatureCard struct {
	Title string `json:"title"`
	Route string `json:"route"`
}

// DashboardModel backs the dashboard view.
type DashboardModel struct {
	User  *session.User `json:"user"`
	Cards []FeatureCard `json:"cards"`
}

// DirectoryRow is one row of the admin user table.
type DirectoryRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Active     bool   `json:"active"`
	Department string `json:"department,omitempty"`
}

// AdminUsersModel backs the role-gated user management view.
type AdminUsersModel struct {
	Users []DirectoryRow `json:"users"`
}

// DepartmentsModel backs the public department listing.
type DepartmentsModel struct {
	Departments []DepartmentOption `json:"departments"`
}

// NotFoundModel backs the wildcard view; the shell renders a manual way
// back to the root dispatcher.
type NotFoundModel struct {
	HomeRoute string `json:"homeRoute"`
}
