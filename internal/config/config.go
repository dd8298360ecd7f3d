// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-key-enroll application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// device identity, and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local key registry backends:
	// the SQLite database and the JSON file store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the
	// development trust-authority HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings for the outbound connection to the trust
	// authority used by the enrollment agent.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Enroller holds the per-phase wait limits of the enrollment engine.
	Enroller Enroller `envPrefix:"ENROLLER_"`

	// Workers holds configuration for the background enrollment
	// scheduler.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the key registry backends.
type Storage struct {
	// DB holds the SQLite registry database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the JSON file registry settings.
	Files Files `envPrefix:"FILES_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, device identity, and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify device JWT
	// tokens. Shared with the trust authority. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the token-issuing deployment and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a device JWT token remains valid
	// after issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used for request integrity checking
	// (the HashSHA256 header). Empty disables the integrity digest.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// InstanceID uniquely identifies this device installation to the
	// trust authority. It is the subject of every device token and the
	// instance_id of the client app metadata.
	// Env: APP_INSTANCE_ID
	InstanceID string `env:"INSTANCE_ID"`

	// DeviceModel is the hardware model string reported in the client
	// app metadata.
	// Env: APP_DEVICE_MODEL
	DeviceModel string `env:"DEVICE_MODEL"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer
// of the development trust authority.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the SQLite registry backend.
type DB struct {
	// DSN is the SQLite Data Source Name used to open the registry
	// database (e.g. "/var/lib/key-enroll/registry.db" or ":memory:").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the JSON file registry backend.
type Files struct {
	// RegistryPath is the path of the JSON file holding the device's key
	// bundles when the file backend is selected (e.g.
	// "/var/lib/key-enroll/registry.json" or ":memory:").
	// Env: STORAGE_FILES_REGISTRY_PATH
	RegistryPath string `env:"REGISTRY_PATH"`
}

// Adapter holds settings for the outbound connection to the trust authority.
type Adapter struct {
	// AuthorityAddress is the base URL of the trust authority's
	// enrollment API (e.g. "https://authority.example.com").
	// Env: ADAPTER_AUTHORITY_ADDRESS
	AuthorityAddress string `env:"AUTHORITY_ADDRESS"`

	// RequestTimeout is the per-request timeout for outbound calls to
	// the trust authority (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Enroller holds the wait limits of the enrollment engine, one per
// suspendable protocol phase. Zero values fall back to the engine's
// defaults.
type Enroller struct {
	// SyncKeysTimeout bounds the wait for the authority's SyncKeys
	// response.
	// Env: ENROLLER_SYNC_KEYS_TIMEOUT
	SyncKeysTimeout time.Duration `env:"SYNC_KEYS_TIMEOUT"`

	// KeyCreationTimeout bounds the wait for local key generation.
	// Env: ENROLLER_KEY_CREATION_TIMEOUT
	KeyCreationTimeout time.Duration `env:"KEY_CREATION_TIMEOUT"`

	// EnrollKeysTimeout bounds the wait for the authority's EnrollKeys
	// response.
	// Env: ENROLLER_ENROLL_KEYS_TIMEOUT
	EnrollKeysTimeout time.Duration `env:"ENROLL_KEYS_TIMEOUT"`
}

// Workers holds configuration for the background enrollment scheduler.
// Once enrolled, the device follows the authority's client directive; these
// values only seed the schedule before the first directive arrives.
type Workers struct {
	// CheckinInterval is the fallback delay between attempts while no
	// client directive is known yet.
	// Env: WORKERS_CHECKIN_INTERVAL
	CheckinInterval time.Duration `env:"CHECKIN_INTERVAL"`

	// RetryPeriod is the fallback delay between retries after a failed
	// attempt while no client directive is known yet.
	// Env: WORKERS_RETRY_PERIOD
	RetryPeriod time.Duration `env:"RETRY_PERIOD"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
