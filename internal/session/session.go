// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"

	"github.com/opsdesk/portal/internal/platform/ctxkey"
)

// # Session State

// State is the observable authentication state of a browser session.
type State int

const (
	// StateLoading exists only while the one-time restore pass runs. The
	// provider completes the restore before invoking any handler, so no
	// consumer ever observes it over HTTP; the route guard still handles
	// it so the decision table is total.
	StateLoading State = iota

	// StateUnauthenticated means no valid persisted auth record exists.
	StateUnauthenticated

	// StateAuthenticated means a complete, well-formed record was restored
	// or a login just committed. User is always non-nil in this state.
	StateAuthenticated
)

// String implements [fmt.Stringer] for logs and test failure messages.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// # Session Object

// Session is the per-browser-session authentication state, constructed once
// per request by the provider middleware and shared by every consumer below
// it in the handler chain.
//
// # Invariant
//
// State == StateAuthenticated if and only if User() != nil. The fields are
// unexported and only mutated together (by restore, Commit, and Clear), so
// no partially-authenticated state is representable.
//
// # Concurrency
//
// A Session belongs to a single request and must not be shared across
// goroutines. Cross-request races are resolved by the record store's
// revision check, not by locking here.
type Session struct {
	id           string
	state        State
	user         *User
	token        string
	baseRevision string
	manager      *Manager
}

// ID returns the opaque browser-session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current authentication state.
func (s *Session) State() State { return s.state }

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool { return s.state == StateAuthenticated }

// User returns the authenticated user record, or nil when unauthenticated.
func (s *Session) User() *User { return s.user }

// Token returns the bearer token for privileged upstream calls.
// It is empty when unauthenticated.
func (s *Session) Token() string { return s.token }

// Commit persists a successful login: both the token and the serialized
// user record are written to the durable store in one operation, then the
// in-memory state flips to authenticated.
//
// A commit that lost a race against a newer commit or a logout returns
// [ErrRevisionConflict] and leaves both the store and the in-memory state
// untouched — the stale response is discarded, not applied.
func (s *Session) Commit(ctx context.Context, token string, user *User) error {
	return s.manager.commit(ctx, s, token, user)
}

// Clear removes the persisted record entirely (both fields) and resets the
// in-memory state to unauthenticated. It is idempotent.
func (s *Session) Clear(ctx context.Context) error {
	return s.manager.clear(ctx, s)
}

// # Context Plumbing

// NewContext returns a context carrying the session. Only the provider
// middleware calls this.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, s)
}

// FromContext retrieves the session installed by the provider middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxkey.KeySession).(*Session)
	return s, ok
}

// MustFromContext retrieves the session or panics.
//
// # Programmer-Error Guard
//
// A consumer running outside the provider middleware is a wiring defect,
// not a runtime condition: it must fail fast and loudly rather than
// silently behave as an anonymous session. The panic is surfaced by the
// recovery middleware as a 500 with a full stack trace in the logs.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic("session: consumer invoked outside the session provider middleware (wiring defect)")
	}
	return s
}
