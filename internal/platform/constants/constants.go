// Copyright (c) 2026 OpsDesk. All rights reserved.

/*
Package constants provides centralized, immutable values for the portal gateway.

It defines default timeouts, rate limits, route paths, and cross-cutting keys
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Session cookie configuration and token issuer.
  - Routes: The navigable surface the route guard decides over.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName = "opsdesk-portal"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle,
	// including the proxied call to the remote API.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session & Security

const (
	// SessionCookieName identifies the signed browser-session cookie.
	SessionCookieName = "portal_sid"

	// SessionCookieIssuer is the 'iss' claim embedded in the signed cookie.
	SessionCookieIssuer = "portal.opsdesk.app"

	// SessionTTL is how long a persisted auth record survives without a new login.
	SessionTTL = 30 * 24 * time.Hour
)

// # Durable Storage Layout
//
// The persisted auth record mirrors the storage contract of the SPA shell:
// an opaque bearer token plus a serialized copy of the user record.

const (
	// StorageKeyAuthToken is the record field holding the opaque bearer token.
	StorageKeyAuthToken = "authToken"

	// StorageKeyLoggedInUser is the record field holding the serialized user.
	StorageKeyLoggedInUser = "loggedInUser"

	// StorageKeyRevision is the record field guarding against stale writes.
	StorageKeyRevision = "revision"

	// RedisPrefixSession is the key prefix for persisted auth records in Redis.
	RedisPrefixSession = "portal:session:"
)

// # Routes
//
// The navigable route surface. The route guard's decision table is keyed on
// these paths; handlers never hardcode redirect targets.

const (
	RouteRoot           = "/"
	RouteLogin          = "/login"
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password"
	RouteDashboard      = "/dashboard"
	RouteAdminUsers     = "/admin/users"
	RouteDepartments    = "/departments"
	RouteRegister       = "/register"
	RouteLogout         = "/logout"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)
