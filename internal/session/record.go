// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import "errors"

// # Store Sentinels

var (
	// ErrNoRecord is returned by [RecordStore.Load] when no persisted auth
	// record exists for the session id.
	ErrNoRecord = errors.New("session: no persisted record")

	// ErrRevisionConflict is returned by [RecordStore.Save] when the stored
	// record moved since the caller restored it. A commit racing against a
	// newer commit or a logout is discarded, never applied out of order.
	ErrRevisionConflict = errors.New("session: record revision conflict")
)

// # Persisted Auth Record

// Record is the durable representation of an authenticated browser session:
// the opaque bearer token plus a serialized copy of the user record.
//
// The two payload fields mirror the storage contract of the SPA shell
// (authToken / loggedInUser). Revision exists only to reject stale writes
// and never leaves the store layer.
type Record struct {
	// AuthToken is the opaque bearer string presented on privileged
	// upstream calls. Empty means absent.
	AuthToken string

	// LoggedInUser is the JSON-serialized [User]. It is stored verbatim:
	// decoding (and therefore corruption detection) is the Manager's job,
	// so the stores stay byte-faithful to whatever was written.
	LoggedInUser string

	// Revision is a UUIDv7 assigned at each commit, used for
	// compare-and-swap semantics in [RecordStore.Save].
	Revision string
}

// IsComplete reports whether both payload fields are present.
func (r Record) IsComplete() bool {
	return r.AuthToken != "" && r.LoggedInUser != ""
}

// IsPartial reports whether exactly one payload field is present — the
// token-without-user (or user-without-token) shape left behind by storage
// tampering or version skew.
func (r Record) IsPartial() bool {
	return (r.AuthToken != "") != (r.LoggedInUser != "")
}
