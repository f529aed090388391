// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"
	"sync"
	"time"
)

// memoryEntry pairs a record with its absolute expiry instant.
type memoryEntry struct {
	record    Record
	expiresAt time.Time
}

// MemoryStore is an in-process [RecordStore] used in development and tests.
// Records vanish on restart, which is acceptable for both.
//
// All operations are safe for concurrent use; the revision check in Save is
// performed under the same lock as the write, so it is a true compare-and-swap.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore constructs an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Load implements [RecordStore]. Expired entries behave as absent and are
// removed eagerly.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return Record{}, ErrNoRecord
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return Record{}, ErrNoRecord
	}
	return entry.record, nil
}

// Save implements [RecordStore] with a locked compare-and-swap on the
// stored revision.
func (s *MemoryStore) Save(_ context.Context, sessionID string, record Record, expectRevision string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.entries[sessionID]
	if ok && s.now().After(current.expiresAt) {
		delete(s.entries, sessionID)
		ok = false
	}

	switch {
	case !ok && expectRevision != "":
		return ErrRevisionConflict
	case ok && current.record.Revision != expectRevision:
		return ErrRevisionConflict
	}

	s.entries[sessionID] = memoryEntry{
		record:    record,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Delete implements [RecordStore]. Deleting an absent record is not an error.
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionID)
	return nil
}

// seed installs a record directly, bypassing the revision check. Test helper.
func (s *MemoryStore) seed(sessionID string, record Record, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{
		record:    record,
		expiresAt: s.now().Add(ttl),
	}
}
