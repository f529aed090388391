// Copyright (c) 2026 OpsDesk. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (stores, upstream client) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported persisted-auth-record store backends.
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the portal gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Remote API (the sole authority for credentials and user data)
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL,required"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	// SessionStore selects the durable backend for persisted auth records:
	// "redis", "postgres", or "memory" (dev/test only, lost on restart).
	SessionStore string `env:"SESSION_STORE" envDefault:"redis"`

	// Key-Value store (Redis) — required when SessionStore is "redis".
	RedisURL string `env:"REDIS_URL"`

	// Relational store (PostgreSQL) — required when SessionStore is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// SessionCookieSecret signs the browser-session cookie (HS256).
	SessionCookieSecret string `env:"SESSION_COOKIE_SECRET,required"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// Backend-conditional requirements (REDIS_URL, DATABASE_URL) cannot be
// expressed as struct tags, so Load validates them explicitly. Catching a
// missing DSN here fails startup with one clear message instead of a
// confusing connect error later.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	switch cfg.SessionStore {
	case StoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("config: REDIS_URL is required when SESSION_STORE=redis")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when SESSION_STORE=postgres")
		}
	case StoreMemory:
		if cfg.IsProduction() {
			return nil, fmt.Errorf("config: SESSION_STORE=memory is not allowed in production")
		}
	default:
		return nil, fmt.Errorf("config: unknown SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
