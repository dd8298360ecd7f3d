package adapter

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/utils"
)

// HTTPClientFactory mints HTTP/REST implementations of [Client]. Every call
// to NewClient produces a client with its own connection state and a freshly
// signed device token, so a token compromised or expired during one protocol
// phase never leaks into the next.
type HTTPClientFactory struct {
	baseURL        string
	requestTimeout time.Duration

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
	instanceID    string

	hashKey string

	logger *logger.Logger
}

// NewHTTPClientFactory constructs a factory for HTTP authority clients.
// It normalises and validates the base URL from adapterCfg.AuthorityAddress
// and initialises the shared HMAC hasher pool used for transport integrity
// digests.
//
// Returns an error if adapterCfg.AuthorityAddress is empty or cannot be
// parsed as a valid URL.
func NewHTTPClientFactory(adapterCfg config.AgentAdapter, appCfg config.AgentApp, logger *logger.Logger) (*HTTPClientFactory, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.AuthorityAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid authority address: %w", err)
	}

	utils.InitHasherPool(appCfg.HashKey)

	return &HTTPClientFactory{
		baseURL:        baseURL,
		requestTimeout: adapterCfg.RequestTimeout,
		tokenSignKey:   appCfg.TokenSignKey,
		tokenIssuer:    appCfg.TokenIssuer,
		tokenDuration:  appCfg.TokenDuration,
		instanceID:     appCfg.InstanceID,
		hashKey:        appCfg.HashKey,
		logger:         logger,
	}, nil
}

// NewClient implements [ClientFactory]. It builds a new HTTP client bound to
// the factory's base URL and timeout and signs a fresh device token for it.
// If token signing fails the client is returned without credentials; the
// authority will reject its requests with an authentication error, which the
// engine surfaces through the normal error mapping.
func (f *HTTPClientFactory) NewClient() Client {
	client := utils.NewHTTPClient()
	client.
		SetBaseURL(f.baseURL).
		SetTimeout(f.requestTimeout)

	var token string
	deviceToken, err := utils.GenerateDeviceToken(f.tokenIssuer, f.instanceID, f.tokenDuration, f.tokenSignKey)
	if err != nil {
		f.logger.Warn().Err(err).Msg("device token signing failed, sending unauthenticated request")
	} else {
		token = deviceToken.SignedString
	}

	return &httpAuthorityClient{
		client:  client,
		token:   token,
		hashKey: f.hashKey,
		logger:  f.logger,
	}
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
