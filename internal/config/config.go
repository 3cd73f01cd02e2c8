// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Storage drivers accepted in [Storage.Driver].
const (
	StorageDriverMemory = "memory"
	StorageDriverSQLite = "sqlite"
)

// Defaults applied before any other source is merged.
const (
	DefaultHTTPAddress      = "localhost:3000"
	DefaultTokenDuration    = 24 * time.Hour
	DefaultTokenIssuer      = "go-accounts"
	DefaultPasswordHashCost = 10
	DefaultRequestTimeout   = 30 * time.Second
	DefaultSQLiteDSN        = "file::memory:?cache=shared"
)

// StructuredConfig is the top-level configuration container of the accounts
// server. It is populated by merging defaults, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, password hashing and bootstrap admin settings.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the user store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// SecretKey is the process-wide token signing secret read from the
	// SECRET_KEY environment variable. It is used when App.TokenSignKey is
	// not set through any other source.
	SecretKey string `env:"SECRET_KEY" json:"-"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control tokens,
// password hashing and the bootstrap admin account.
type App struct {
	// TokenSignKey is the secret used to sign and verify bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY (falls back to SECRET_KEY)
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the validity window of an issued token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PasswordHashCost is the bcrypt cost factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// AdminEmail, AdminPassword and AdminName describe the admin account
	// seeded at startup. Seeding is skipped when email or password is empty.
	// Env: APP_ADMIN_EMAIL, APP_ADMIN_PASSWORD, APP_ADMIN_NAME
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME"`

	// Version is the version string reported by GET /version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage selects the user store backend.
type Storage struct {
	// Driver is either "memory" or "sqlite".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DB holds the SQL backend settings. Ignored by the memory driver.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQL backend.
type DB struct {
	// DSN is the SQLite data source name. Only in-memory DSNs are accepted.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server. Empty
	// disables it.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// CORSOrigins lists the origins allowed by the CORS middleware. Empty
	// disables CORS headers.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			PasswordHashCost: DefaultPasswordHashCost,
			AdminName:        "admin",
		},
		Storage: Storage{
			Driver: StorageDriverMemory,
			DB:     DB{DSN: DefaultSQLiteDSN},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}
