// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package gate controls which parts of a rendered view a given role may
// see. Where package guard gates whole routes, this package gates regions
// within a route: a section hidden by the gate is absent from the response
// body entirely, not rendered-but-disabled.
package gate

import (
	"slices"

	"github.com/opsdesk/portal/internal/session"
)

// Allowed reports whether role is one of the permitted roles. An empty
// permitted list means the region is open to every role.
func Allowed(role session.Role, permitted ...session.Role) bool {
	if len(permitted) == 0 {
		return true
	}
	return slices.Contains(permitted, role)
}

// Section is a gated region of a view: content plus the roles allowed to
// see it.
type Section[T any] struct {
	Content T
	Roles   []session.Role
}

// Visible filters sections down to those the role may see, preserving
// order. Sections outside the role's reach leave no trace in the result.
func Visible[T any](role session.Role, sections []Section[T]) []T {
	visible := make([]T, 0, len(sections))
	for _, section := range sections {
		if Allowed(role, section.Roles...) {
			visible = append(visible, section.Content)
		}
	}
	return visible
}
