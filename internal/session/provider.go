// Copyright (c) 2026 OpsDesk. All rights reserved.

package session

import (
	"log/slog"
	"net/http"

	"github.com/opsdesk/portal/internal/platform/constants"
	"github.com/opsdesk/portal/internal/platform/respond"
	"github.com/opsdesk/portal/internal/platform/sec"
	"github.com/opsdesk/portal/pkg/uuidv7"
)

// Provider is the middleware that surrounds the whole route surface with a
// resolved session. Every handler downstream can call [MustFromContext] and
// receive a session that is either authenticated or unauthenticated — the
// loading state is resolved here, before any handler runs, so no consumer
// ever observes it.
type Provider struct {
	manager *Manager
	codec   *sec.CookieCodec
	secure  bool
	logger  *slog.Logger
}

// NewProvider constructs the session middleware. secure controls the
// cookie's Secure attribute and should be true outside development.
func NewProvider(manager *Manager, codec *sec.CookieCodec, secure bool, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{manager: manager, codec: codec, secure: secure, logger: logger}
}

// Handler wraps next with session resolution.
//
// # Flow
//
//  1. Read and verify the signed session-id cookie. Absent, tampered or
//     expired cookies all resolve the same way: a fresh session id is
//     minted and set, and the session starts unauthenticated.
//  2. Restore the session from the record store.
//  3. Inject the session into the request context.
//
// A record-store failure is the one case that aborts the request: without
// the store the authentication state is unknowable, and guessing either way
// would be wrong for half the users.
func (p *Provider) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, fresh := p.resolveSessionID(r)

		if fresh {
			if err := p.setCookie(w, sessionID); err != nil {
				respond.Error(w, r, err)
				return
			}
		}

		currentSession, err := p.manager.Restore(r.Context(), sessionID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), currentSession)))
	})
}

// resolveSessionID extracts the session id from the cookie, or mints a new
// one when the cookie is absent or fails verification. The second return
// reports whether a fresh cookie must be set.
func (p *Provider) resolveSessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil {
		return uuidv7.New(), true
	}

	sessionID, err := p.codec.Verify(cookie.Value)
	if err != nil {
		p.logger.WarnContext(r.Context(), "session_cookie_rejected",
			slog.Any("error", err),
		)
		return uuidv7.New(), true
	}

	return sessionID, false
}

func (p *Provider) setCookie(w http.ResponseWriter, sessionID string) error {
	value, err := p.codec.Mint(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(p.codec.TTL().Seconds()),
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
