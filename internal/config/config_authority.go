package config

import (
	"fmt"
	"time"
)

// AuthorityApp holds application settings used by the dev trust authority.
type AuthorityApp struct {
	// TokenSignKey is the secret used to verify device JWT tokens.
	TokenSignKey string
	// TokenIssuer is the expected "iss" claim of presented device tokens.
	TokenIssuer string
	// Version is the authority's semantic version string.
	Version string
}

// AuthorityServer holds the inbound HTTP settings of the dev trust
// authority.
type AuthorityServer struct {
	// HTTPAddress is the listen address in "host:port" format.
	HTTPAddress string
	// RequestTimeout bounds a single inbound request.
	RequestTimeout time.Duration
}

// AuthorityConfig is the top-level dev authority configuration assembled
// from [StructuredConfig].
type AuthorityConfig struct {
	// App contains token verification settings.
	App AuthorityApp
	// Server contains listen address and timeouts.
	Server AuthorityServer
}

// GetAuthorityConfig builds and validates the dev-authority view of the
// merged structured configuration.
func GetAuthorityConfig() (*AuthorityConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	authorityCfg := &AuthorityConfig{
		App: AuthorityApp{
			TokenSignKey: cfg.App.TokenSignKey,
			TokenIssuer:  cfg.App.TokenIssuer,
			Version:      cfg.App.Version,
		},
		Server: AuthorityServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
	}

	return authorityCfg, authorityCfg.validate()
}

func (cfg *AuthorityConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
