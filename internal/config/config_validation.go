// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; role-specific rules live on the derived
// views (see [AgentConfig.validate]) because the authority dev server and
// the agent require different field sets.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *AgentConfig) validate() error {
	if cfg.Storage.DB.DSN == "" && cfg.Storage.Files.RegistryPath == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.AuthorityAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" ||
		cfg.App.TokenDuration == 0 || cfg.App.InstanceID == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
