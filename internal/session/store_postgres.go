// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opsdesk/portal/internal/platform/dberr"
)

// PostgresStore persists auth records in the session_records table. It is
// the durable alternative to [RedisStore] for deployments that already run
// Postgres and do not want a second stateful service.
//
// The user record column is TEXT rather than jsonb on purpose: the store
// must hand back exactly the bytes it was given, including bytes that are
// not valid JSON, so the restore policy can classify corruption itself.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-connected pool. Migrations are the
// caller's responsibility.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load implements [RecordStore]. Expired rows behave as absent; the stale
// row is removed opportunistically, and a failure of that cleanup does not
// affect the result.
func (s *PostgresStore) Load(ctx context.Context, sessionID string) (Record, error) {
	query := `
		SELECT auth_token, logged_in_user, revision, expires_at
		FROM session_records
		WHERE session_id = $1`

	var record Record
	var expiresAt time.Time
	err := s.pool.QueryRow(ctx, query, sessionID).Scan(
		&record.AuthToken,
		&record.LoggedInUser,
		&record.Revision,
		&expiresAt,
	)
	if err != nil {
		if classified := dberr.Classify(err); errors.Is(classified, dberr.ErrNotFound) {
			return Record{}, ErrNoRecord
		}
		return Record{}, fmt.Errorf("session: postgres load failed: %w", err)
	}

	if time.Now().After(expiresAt) {
		_, _ = s.pool.Exec(ctx, `DELETE FROM session_records WHERE session_id = $1`, sessionID)
		return Record{}, ErrNoRecord
	}
	return record, nil
}

// Save implements [RecordStore]. The revision check rides in the statement
// itself, so check and write are one atomic operation: zero rows affected
// means another writer got there first.
func (s *PostgresStore) Save(ctx context.Context, sessionID string, record Record, expectRevision string, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	var query string
	var args []any
	if expectRevision == "" {
		// Expecting no live record. The upsert still succeeds over an
		// expired leftover row, which behaves as absent everywhere else.
		query = `
			INSERT INTO session_records (session_id, auth_token, logged_in_user, revision, expires_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (session_id) DO UPDATE
			SET auth_token = EXCLUDED.auth_token,
			    logged_in_user = EXCLUDED.logged_in_user,
			    revision = EXCLUDED.revision,
			    expires_at = EXCLUDED.expires_at,
			    updated_at = NOW()
			WHERE session_records.expires_at < NOW()`
		args = []any{sessionID, record.AuthToken, record.LoggedInUser, record.Revision, expiresAt}
	} else {
		query = `
			UPDATE session_records
			SET auth_token = $2,
			    logged_in_user = $3,
			    revision = $4,
			    expires_at = $5,
			    updated_at = NOW()
			WHERE session_id = $1 AND revision = $6 AND expires_at >= NOW()`
		args = []any{sessionID, record.AuthToken, record.LoggedInUser, record.Revision, expiresAt, expectRevision}
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		// Two INSERTs can still race ahead of the ON CONFLICT arbitration.
		if classified := dberr.Classify(err); errors.Is(classified, dberr.ErrConflict) {
			return ErrRevisionConflict
		}
		return fmt.Errorf("session: postgres save failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRevisionConflict
	}
	return nil
}

// Delete implements [RecordStore].
func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM session_records WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("session: postgres delete failed: %w", err)
	}
	return nil
}
