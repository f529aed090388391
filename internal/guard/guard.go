// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package guard decides, for every route, whether the current session may
// see it or must be sent elsewhere.
//
// # Architecture
//
// The decision function is pure: given an authentication state and a path
// it returns a [Decision], with no I/O and no knowledge of HTTP. The view
// layer translates decisions into responses. Keeping the policy in one
// side-effect-free function makes the no-redirect-loop property directly
// testable.
package guard

import (
	"github.com/opsdesk/portal/internal/platform/constants"
	"github.com/opsdesk/portal/internal/session"
)

// Kind classifies what the caller should do with the request.
type Kind int

const (
	// Render means the requested view may be served.
	Render Kind = iota

	// Redirect means the session must be sent to Decision.Target instead.
	Redirect

	// NotFound means the path matches no known route.
	NotFound

	// Placeholder means the authentication state is still being resolved
	// and a neutral loading response should be served. With the session
	// provider resolving state before handlers run this is unreachable in
	// practice, but the policy still defines it so the decision table is
	// total over all states.
	Placeholder
)

// Decision is the guard's verdict for one request.
type Decision struct {
	Kind   Kind
	Target string
}

func render() Decision            { return Decision{Kind: Render} }
func redirect(to string) Decision { return Decision{Kind: Redirect, Target: to} }

// routeClass describes how a known route relates to authentication.
type routeClass int

const (
	// classPublic routes are reachable regardless of state.
	classPublic routeClass = iota

	// classEntry routes are the sign-in surface: reachable only while
	// unauthenticated, since an authenticated session has no business on a
	// login or registration form.
	classEntry

	// classPrivate routes require an authenticated session.
	classPrivate

	// classDispatch routes never render anything themselves; they forward
	// the session to its home view. The root path is the only member.
	classDispatch
)

// routes is the complete decision table for the portal's route surface.
// Paths not listed here are unknown and resolve to NotFound for every state.
var routes = map[string]routeClass{
	constants.RouteRoot:           classDispatch,
	constants.RouteLogin:          classEntry,
	constants.RouteRegister:       classEntry,
	constants.RouteForgotPassword: classEntry,
	constants.RouteResetPassword:  classEntry,
	constants.RouteDashboard:      classPrivate,
	constants.RouteAdminUsers:     classPrivate,
	constants.RouteDepartments:    classPublic,
}

// Decide returns the verdict for path under state.
//
// # Invariants
//
// Every redirect target is itself renderable under the same state, so a
// chain of decisions always terminates: entry routes redirect authenticated
// sessions to the dashboard, private routes redirect unauthenticated
// sessions to the login view, and those targets render directly.
func Decide(state session.State, path string) Decision {
	class, known := routes[path]
	if !known {
		return Decision{Kind: NotFound}
	}

	if state == session.StateLoading {
		return Decision{Kind: Placeholder}
	}

	switch class {
	case classPublic:
		return render()
	case classEntry:
		if state == session.StateAuthenticated {
			return redirect(constants.RouteDashboard)
		}
		return render()
	case classPrivate:
		if state == session.StateAuthenticated {
			return render()
		}
		return redirect(constants.RouteLogin)
	case classDispatch:
		if state == session.StateAuthenticated {
			return redirect(constants.RouteDashboard)
		}
		return redirect(constants.RouteLogin)
	default:
		return Decision{Kind: NotFound}
	}
}
