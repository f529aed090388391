// Copyright (c) 2026 OpsDesk. All rights reserved.

package guard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/portal/internal/platform/constants"
	"github.com/opsdesk/portal/internal/session"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		state session.State
		path  string
		want  Decision
	}{
		// Root dispatches to the session's home view.
		{session.StateUnauthenticated, constants.RouteRoot, Decision{Kind: Redirect, Target: constants.RouteLogin}},
		{session.StateAuthenticated, constants.RouteRoot, Decision{Kind: Redirect, Target: constants.RouteDashboard}},

		// Entry routes render only for anonymous sessions.
		{session.StateUnauthenticated, constants.RouteLogin, Decision{Kind: Render}},
		{session.StateAuthenticated, constants.RouteLogin, Decision{Kind: Redirect, Target: constants.RouteDashboard}},
		{session.StateUnauthenticated, constants.RouteRegister, Decision{Kind: Render}},
		{session.StateAuthenticated, constants.RouteRegister, Decision{Kind: Redirect, Target: constants.RouteDashboard}},
		{session.StateUnauthenticated, constants.RouteForgotPassword, Decision{Kind: Render}},
		{session.StateAuthenticated, constants.RouteForgotPassword, Decision{Kind: Redirect, Target: constants.RouteDashboard}},
		{session.StateUnauthenticated, constants.RouteResetPassword, Decision{Kind: Render}},
		{session.StateAuthenticated, constants.RouteResetPassword, Decision{Kind: Redirect, Target: constants.RouteDashboard}},

		// Private routes require authentication.
		{session.StateUnauthenticated, constants.RouteDashboard, Decision{Kind: Redirect, Target: constants.RouteLogin}},
		{session.StateAuthenticated, constants.RouteDashboard, Decision{Kind: Render}},
		{session.StateUnauthenticated, constants.RouteAdminUsers, Decision{Kind: Redirect, Target: constants.RouteLogin}},
		{session.StateAuthenticated, constants.RouteAdminUsers, Decision{Kind: Render}},

		// Public routes render regardless of state.
		{session.StateUnauthenticated, constants.RouteDepartments, Decision{Kind: Render}},
		{session.StateAuthenticated, constants.RouteDepartments, Decision{Kind: Render}},

		// Unknown paths are not-found for every state.
		{session.StateUnauthenticated, "/nope", Decision{Kind: NotFound}},
		{session.StateAuthenticated, "/nope", Decision{Kind: NotFound}},
		{session.StateLoading, "/nope", Decision{Kind: NotFound}},

		// Unresolved state holds every known route at a placeholder.
		{session.StateLoading, constants.RouteLogin, Decision{Kind: Placeholder}},
		{session.StateLoading, constants.RouteDashboard, Decision{Kind: Placeholder}},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s %s", tc.state, tc.path), func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.state, tc.path))
		})
	}
}

// TestDecideNeverLoops follows every redirect the table can produce and
// requires that it lands on a rendering decision in one hop.
func TestDecideNeverLoops(t *testing.T) {
	states := []session.State{session.StateUnauthenticated, session.StateAuthenticated}

	for path := range routes {
		for _, state := range states {
			decision := Decide(state, path)
			if decision.Kind != Redirect {
				continue
			}

			followed := Decide(state, decision.Target)
			require.Equalf(t, Render, followed.Kind,
				"redirect from %s under %s lands on %s which does not render", path, state, decision.Target)
		}
	}
}
