// Copyright (c) 2026 OpsDesk. All rights reserved.

// Package sec provides cryptographic primitives for browser-session identity.
//
// # Architecture
//
// This package isolates security-sensitive code (cookie signing) from the
// domain logic. The gateway never handles password material — credentials go
// straight to the remote API — so the only local secret is the HMAC key that
// makes the session-id cookie tamper-evident.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside the signed session cookie.
//
// # Why a signed cookie?
//
// The cookie value is only a pointer into the durable record store. Signing
// it with HS256 prevents a client from forging someone else's session id;
// it carries no identity data itself.
type SessionClaims struct {
	jwt.RegisteredClaims

	// SessionID is the opaque browser-session identifier (UUIDv7).
	SessionID string `json:"sid"`
}

// CookieCodec mints and verifies signed session cookies using HS256.
type CookieCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCookieCodec creates a new CookieCodec.
func NewCookieCodec(secret, issuer string, ttl time.Duration) (*CookieCodec, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: session cookie secret must be at least 32 bytes")
	}

	return &CookieCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Mint creates a signed cookie value for the given session id.
func (codec *CookieCodec) Mint(sessionID string) (string, error) {
	currentTime := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(codec.ttl)),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session cookie: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and validity of a cookie value and returns the
// embedded session id.
func (codec *CookieCodec) Verify(cookieValue string) (string, error) {
	token, err := jwt.ParseWithClaims(cookieValue, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	})

	if err != nil {
		return "", fmt.Errorf("sec: invalid session cookie: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("sec: invalid session cookie claims")
	}

	return claims.SessionID, nil
}

// TTL returns the configured cookie lifetime, used when setting the cookie's
// Max-Age so the browser and the durable record expire together.
func (codec *CookieCodec) TTL() time.Duration {
	return codec.ttl
}
