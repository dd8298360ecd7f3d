package config

import (
	"fmt"
	"time"
)

// AgentApp holds agent-side application settings derived from the shared
// structured config.
type AgentApp struct {
	// TokenSignKey is the secret used to sign device JWT tokens.
	TokenSignKey string
	// TokenIssuer is the "iss" claim of issued device tokens.
	TokenIssuer string
	// TokenDuration is the validity window of issued device tokens.
	TokenDuration time.Duration
	// HashKey is the HMAC key for the request integrity digest. Empty
	// disables the digest.
	HashKey string
	// InstanceID is this device installation's identifier.
	InstanceID string
	// DeviceModel is the hardware model reported to the authority.
	DeviceModel string
	// Version is the agent's semantic version string.
	Version string
}

// AgentAdapter holds network settings used by the agent transport layer.
type AgentAdapter struct {
	// AuthorityAddress is the base URL of the trust authority API.
	AuthorityAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// AgentDB contains SQLite registry settings for the agent.
type AgentDB struct {
	// DSN is the SQLite connection string of the key registry.
	DSN string
}

// AgentFiles contains JSON file registry settings for the agent.
type AgentFiles struct {
	// RegistryPath is the JSON registry file path.
	RegistryPath string
}

// AgentStorage groups agent registry backend settings. When DSN is set the
// SQLite backend is used; otherwise the JSON file backend at RegistryPath.
type AgentStorage struct {
	// DB holds SQLite registry settings.
	DB AgentDB
	// Files holds JSON file registry settings.
	Files AgentFiles
}

// AgentEnroller contains the per-phase wait limits of the enrollment engine.
// Zero values fall back to the engine defaults.
type AgentEnroller struct {
	// SyncKeysTimeout bounds the wait for the SyncKeys response.
	SyncKeysTimeout time.Duration
	// KeyCreationTimeout bounds the wait for local key generation.
	KeyCreationTimeout time.Duration
	// EnrollKeysTimeout bounds the wait for the EnrollKeys response.
	EnrollKeysTimeout time.Duration
}

// AgentWorkers contains enrollment scheduler settings used before the first
// client directive is known.
type AgentWorkers struct {
	// CheckinInterval is the fallback delay between attempts.
	CheckinInterval time.Duration
	// RetryPeriod is the fallback delay between retries after a failure.
	RetryPeriod time.Duration
}

// AgentConfig is the top-level agent configuration assembled from
// [StructuredConfig].
type AgentConfig struct {
	// App contains application-level agent settings.
	App AgentApp
	// Adapter contains the trust authority address and timeouts.
	Adapter AgentAdapter
	// Storage contains key registry settings.
	Storage AgentStorage
	// Enroller contains engine wait limits.
	Enroller AgentEnroller
	// Workers contains enrollment scheduler settings.
	Workers AgentWorkers
}

// GetAgentConfig builds and validates an agent-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the agent runtime, and validates the resulting [AgentConfig].
func GetAgentConfig() (*AgentConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	agentCfg := &AgentConfig{
		App: AgentApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			HashKey:       cfg.App.HashKey,
			InstanceID:    cfg.App.InstanceID,
			DeviceModel:   cfg.App.DeviceModel,
			Version:       cfg.App.Version,
		},
		Adapter: AgentAdapter{
			AuthorityAddress: cfg.Adapter.AuthorityAddress,
			RequestTimeout:   cfg.Adapter.RequestTimeout,
		},
		Storage: AgentStorage{
			DB: AgentDB{
				DSN: cfg.Storage.DB.DSN,
			},
			Files: AgentFiles{
				RegistryPath: cfg.Storage.Files.RegistryPath,
			},
		},
		Enroller: AgentEnroller{
			SyncKeysTimeout:    cfg.Enroller.SyncKeysTimeout,
			KeyCreationTimeout: cfg.Enroller.KeyCreationTimeout,
			EnrollKeysTimeout:  cfg.Enroller.EnrollKeysTimeout,
		},
		Workers: AgentWorkers{
			CheckinInterval: cfg.Workers.CheckinInterval,
			RetryPeriod:     cfg.Workers.RetryPeriod,
		},
	}

	return agentCfg, agentCfg.validate()
}
