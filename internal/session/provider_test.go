// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/portal/internal/platform/constants"
	"github.com/opsdesk/portal/internal/platform/sec"
)

func testProvider(t *testing.T) (*Provider, *Manager, *MemoryStore, *sec.CookieCodec) {
	t.Helper()

	codec, err := sec.NewCookieCodec(
		"0123456789abcdef0123456789abcdef",
		constants.SessionCookieIssuer,
		time.Hour,
	)
	require.NoError(t, err)

	store := NewMemoryStore()
	manager := NewManager(store, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	provider := NewProvider(manager, codec, false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return provider, manager, store, codec
}

func TestProviderMintsCookieForFirstVisit(t *testing.T) {
	provider, _, _, codec := testProvider(t)

	var seen *Session
	handler := provider.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = MustFromContext(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, seen)
	assert.Equal(t, StateUnauthenticated, seen.State())

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, constants.SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	// The cookie round-trips back to the session id the handler saw.
	sessionID, err := codec.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, seen.ID(), sessionID)
}

func TestProviderRestoresExistingSession(t *testing.T) {
	provider, manager, _, codec := testProvider(t)
	ctx := context.Background()

	committed, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, committed.Commit(ctx, "token-abc", testUser()))

	value, err := codec.Mint("sid-1")
	require.NoError(t, err)

	var seen *Session
	handler := provider.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = MustFromContext(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: value})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, seen)
	assert.Equal(t, StateAuthenticated, seen.State())
	require.NotNil(t, seen.User())
	assert.Equal(t, "u1", seen.User().ID)

	// An existing valid cookie is not reissued.
	assert.Empty(t, recorder.Result().Cookies())
}

func TestProviderRejectsTamperedCookie(t *testing.T) {
	provider, manager, _, _ := testProvider(t)
	ctx := context.Background()

	committed, err := manager.Restore(ctx, "sid-1")
	require.NoError(t, err)
	require.NoError(t, committed.Commit(ctx, "token-abc", testUser()))

	var seen *Session
	handler := provider.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = MustFromContext(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "sid-1"})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	// A forged cookie never reaches the stored session: a fresh anonymous
	// session is minted instead.
	require.NotNil(t, seen)
	assert.Equal(t, StateUnauthenticated, seen.State())
	assert.NotEqual(t, "sid-1", seen.ID())
	require.Len(t, recorder.Result().Cookies(), 1)
}

func TestMustFromContextPanicsOutsideProvider(t *testing.T) {
	assert.Panics(t, func() {
		MustFromContext(context.Background())
	})
}
