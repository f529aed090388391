// Copyright (c) 2026 OpsDesk. All rights reserved.

package upstream

import (
	"time"

	"github.com/opsdesk/portal/internal/session"
)

// loginRequest is the wire body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the success body for POST /auth/login.
type loginResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// LoginResult is what a successful credential exchange yields: the bearer
// token and the decoded user record it belongs to.
type LoginResult struct {
	Token string
	User  *session.User
}

// SignupInput carries the registration fields forwarded to the remote API.
type SignupInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID string `json:"departmentId"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Department is one entry of the registration department selector.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectoryUser is the remote API's public user record as served by
// GET /api/users, department relation included.
type DirectoryUser struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Department *struct {
		Name string `json:"name"`
	} `json:"department"`
}

// apiError is the remote API's error body shape.
type apiError struct {
	Message string `json:"message"`
}
