// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// It is used for browser-session identifiers, persisted-record revisions, and
// request correlation IDs across the portal gateway. Because it is
// time-sortable, a revision generated later always compares fresher in logs
// and store dumps, which makes stale-write investigations straightforward.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// This is acceptable as OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}
