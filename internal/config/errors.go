package config

import "errors"

// Validation errors returned by [AgentConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid trust-authority adapter
	// settings (for example, missing authority address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid registry storage settings
	// (neither a SQLite DSN nor a JSON registry path was provided).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// required by the agent (for example, missing token sign key or
	// device instance ID).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates invalid dev-authority server
	// settings (for example, a missing listen address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
