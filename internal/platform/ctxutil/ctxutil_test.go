// Copyright (c) 2026 OpsDesk. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdesk/portal/internal/platform/ctxutil"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestLogger_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Without a logger attached we must fall back to the default, never nil.
	assert.NotNil(t, ctxutil.GetLogger(ctx))

	logger := slog.Default().With(slog.String("test", "yes"))
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}
