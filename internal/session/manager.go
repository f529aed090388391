// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/opsdesk/portal/pkg/uuidv7"
)

// Manager implements the session store contract: restore at session start,
// commit on successful login, clear on logout.
//
// # Review Process
//
// This type is the single authority over the persisted auth record. Any
// change to the corruption or partial-record policy below must be reviewed
// against the restore test suite.
type Manager struct {
	store  RecordStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewManager constructs a [Manager] with its store dependency.
//
// Tests construct fresh Managers over isolated memory stores; nothing in
// this package is process-global.
func NewManager(store RecordStore, ttl time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, ttl: ttl, logger: logger}
}

// Restore reads the persisted auth record and produces the session for this
// browser session id. It never returns a partially-authenticated session.
//
// # Resolution Table
//
//   - No record                         → unauthenticated.
//   - Complete record, user decodes     → authenticated with the decoded user.
//   - Complete record, user corrupt     → record discarded entirely, unauthenticated.
//   - Partial record (one field absent) → record discarded entirely, unauthenticated.
//
// Corrupt and partial states are logged for diagnosis but never surfaced to
// the user: they are expected outcomes of storage tampering or version skew,
// not user mistakes. Partial records are discarded rather than preserved —
// a stray token without a user record is unusable and keeping it would only
// leave a credential lying in storage.
//
// Only a store-level failure (backend unreachable) returns an error; the
// caller cannot know the authentication state in that case and must fail
// the request rather than guess.
func (m *Manager) Restore(ctx context.Context, sessionID string) (*Session, error) {
	s := &Session{
		id:      sessionID,
		state:   StateLoading,
		manager: m,
	}

	record, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if err == ErrNoRecord {
			s.state = StateUnauthenticated
			return s, nil
		}
		return nil, fmt.Errorf("session: restore failed: %w", err)
	}

	if record.IsPartial() {
		m.discard(ctx, sessionID, "partial persisted record")
		s.state = StateUnauthenticated
		return s, nil
	}

	user := &User{}
	if err := json.Unmarshal([]byte(record.LoggedInUser), user); err != nil {
		m.discard(ctx, sessionID, "stored user record is not valid JSON")
		s.state = StateUnauthenticated
		return s, nil
	}
	if err := user.Validate(); err != nil {
		m.discard(ctx, sessionID, err.Error())
		s.state = StateUnauthenticated
		return s, nil
	}

	s.state = StateAuthenticated
	s.user = user
	s.token = record.AuthToken
	s.baseRevision = record.Revision
	return s, nil
}

// commit implements [Session.Commit]. Both fields are written in a single
// revision-checked store operation; in-memory state mutates only on success.
func (m *Manager) commit(ctx context.Context, s *Session, token string, user *User) error {
	if token == "" {
		return fmt.Errorf("session: commit requires a token")
	}
	if user == nil {
		return fmt.Errorf("session: commit requires a user record")
	}
	if err := user.Validate(); err != nil {
		return err
	}

	serialized, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: failed to serialize user record: %w", err)
	}

	record := Record{
		AuthToken:    token,
		LoggedInUser: string(serialized),
		Revision:     uuidv7.New(),
	}

	if err := m.store.Save(ctx, s.id, record, s.baseRevision, m.ttl); err != nil {
		if err == ErrRevisionConflict {
			m.logger.WarnContext(ctx, "session_stale_commit_discarded",
				slog.String("session_id", s.id),
			)
		}
		return err
	}

	s.state = StateAuthenticated
	s.user = user
	s.token = token
	s.baseRevision = record.Revision
	return nil
}

// clear implements [Session.Clear]. The delete is unconditional: a logout
// always wins against any in-flight commit.
func (m *Manager) clear(ctx context.Context, s *Session) error {
	if err := m.store.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("session: clear failed: %w", err)
	}

	s.state = StateUnauthenticated
	s.user = nil
	s.token = ""
	s.baseRevision = ""
	return nil
}

// discard drops a corrupted or partial record. A delete failure here is
// logged but not propagated; the session still resolves to unauthenticated.
func (m *Manager) discard(ctx context.Context, sessionID string, reason string) {
	m.logger.WarnContext(ctx, "session_record_discarded",
		slog.String("session_id", sessionID),
		slog.String("reason", reason),
	)

	if err := m.store.Delete(ctx, sessionID); err != nil {
		m.logger.ErrorContext(ctx, "session_record_discard_failed",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
	}
}
