// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"
	"time"
)

// RecordStore is the durable key-value home of persisted auth records,
// keyed by browser-session id.
//
// # Why an interface?
//
// The Manager owns all policy (corruption handling, invariants, stale-write
// rejection); stores are dumb and byte-faithful. Three implementations exist:
// Redis for production, PostgreSQL where no Redis is available, and an
// in-process map for development and tests.
type RecordStore interface {
	// Load returns the record for the session id, or [ErrNoRecord] when
	// nothing (or only an expired record) is stored.
	Load(ctx context.Context, sessionID string) (Record, error)

	// Save writes the record atomically — both payload fields and the new
	// revision land in one store operation, or none do.
	//
	// The write is conditional: it succeeds only if the currently stored
	// revision equals expectRevision (empty string means "no record
	// present"). Otherwise [ErrRevisionConflict] is returned and the store
	// is left untouched.
	Save(ctx context.Context, sessionID string, record Record, expectRevision string, ttl time.Duration) error

	// Delete removes the whole record. It is unconditional and idempotent:
	// a logout or a corrupted-state discard always wins, and deleting an
	// absent record is not an error.
	Delete(ctx context.Context, sessionID string) error
}
