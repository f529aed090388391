// Copyright (c) 2026 OpsDesk. All rights reserved.

/*
Package session implements the authentication session core of the portal.

It owns the per-browser-session state (authenticated or not, and which user),
the durable Persisted Auth Record that carries that state across page reloads,
and the provider middleware that makes the state available to every handler.

# Architecture

  - Manager: restore/commit/clear over a pluggable [RecordStore].
  - RecordStore: Redis (primary), PostgreSQL, or process memory (dev/test).
  - Provider: HTTP middleware installing a [*Session] into the request context.

The record store is mutated exclusively through the Manager. No other
component reads or writes the durable record directly — that discipline is
what keeps the authenticated-implies-user invariant enforceable.
*/
package session

import (
	"fmt"
	"time"
)

// # Roles

// Role represents the authorization level granted to a user account.
//
// Roles are assigned by the remote API and arrive embedded in the user
// record. The portal only ever gates visibility on them; enforcement
// happens upstream on every privileged call.
type Role string

const (
	// RoleAdmin has access to the user-management area.
	RoleAdmin Role = "ADMIN"

	// RoleEmployee is a staff account without administrative sections.
	RoleEmployee Role = "EMPLOYEE"

	// RoleUser is the default role granted at registration.
	RoleUser Role = "USER"
)

// ParseRole validates a raw role string against the closed enum.
//
// An unknown value is a data error, never silently accepted: a record
// carrying one is treated as corrupt by [Manager.Restore].
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleEmployee, RoleUser:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("session: unknown role %q", raw)
	}
}

// Valid reports whether the role is one of the three enumerated values.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// # User Record

// User is the identity record returned by the remote API at login and
// cached in the persisted auth record for the duration of the browser session.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           Role      `json:"role"`
	DepartmentName *string   `json:"departmentName,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks the structural invariants of a decoded user record.
//
// It is called on every restore: a stored record that fails here is
// corrupted state and resolves to unauthenticated, never to a
// partially-authenticated session.
func (u *User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("session: user record has no id")
	}
	if u.Email == "" {
		return fmt.Errorf("session: user record has no email")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("session: user record has unknown role %q", u.Role)
	}
	return nil
}
