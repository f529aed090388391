// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package dberr classifies low-level PostgreSQL errors into the small set
// of categories the storage layer cares about, so store code can branch on
// sentinels instead of SQLSTATE strings.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound reports that the queried row does not exist.
	ErrNotFound = errors.New("dberr: row not found")

	// ErrConflict reports that a concurrent writer got in the way: a unique
	// violation or a serialization failure. The caller decides whether to
	// retry or surface the loss.
	ErrConflict = errors.New("dberr: write conflict")
)

// Classify inspects a database error and maps it onto the package sentinels
// where possible. Unclassified errors are returned wrapped, never swallowed.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation, pgerrcode.SerializationFailure:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Code)
		}
	}

	return fmt.Errorf("dberr: unclassified database error: %w", err)
}
