// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package agent

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-key-enroll/internal/adapter"
	"github.com/MKhiriev/go-key-enroll/internal/authority"
	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/crypto"
	"github.com/MKhiriev/go-key-enroll/internal/enroller"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/registry"
	"github.com/MKhiriev/go-key-enroll/models"
)

// End-to-end tests running the real agent pipeline — registry, crypto,
// resty adapter — against the dev authority served over httptest.

const (
	e2eSignKey  = "e2e-sign-key"
	e2eIssuer   = "e2e-authority"
	e2eInstance = "instance-e2e"
)

func startAuthority(t *testing.T) *httptest.Server {
	t.Helper()

	handler := authority.NewHandler(&config.AuthorityConfig{
		App: config.AuthorityApp{TokenSignKey: e2eSignKey, TokenIssuer: e2eIssuer},
	}, logger.Nop())

	server := httptest.NewServer(handler.Init())
	t.Cleanup(server.Close)
	return server
}

func newAttempt(t *testing.T, store registry.Store, authorityURL string) *enroller.Enroller {
	t.Helper()

	factory, err := adapter.NewHTTPClientFactory(
		config.AgentAdapter{AuthorityAddress: authorityURL, RequestTimeout: 5 * time.Second},
		config.AgentApp{
			TokenSignKey:  e2eSignKey,
			TokenIssuer:   e2eIssuer,
			TokenDuration: time.Hour,
			InstanceID:    e2eInstance,
		},
		logger.Nop(),
	)
	require.NoError(t, err)

	return enroller.New(store, factory, crypto.NewKeyCreator(), crypto.NewKeyProofComputer(), enroller.Timeouts{}, logger.Nop())
}

func e2eAppMetadata() models.ClientAppMetadata {
	return models.ClientAppMetadata{
		InstanceID:  e2eInstance,
		DeviceModel: "e2e-model",
		ApplicationSpecificMetadata: []models.ApplicationSpecificMetadata{
			{DeviceSoftwarePackage: models.ApplicationName, SoftwareVersion: models.ClientVersion},
		},
	}
}

func TestEnrollment_EndToEnd(t *testing.T) {
	server := startAuthority(t)
	store, err := registry.NewStore(config.AgentStorage{
		Files: config.AgentFiles{RegistryPath: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()

	// First attempt: the registry is empty, so the authority demands a
	// fresh active P-256 key for every bundle and the full two-round flow
	// runs.
	first := newAttempt(t, store, server.URL).Enroll(ctx,
		models.ClientMetadata{InvocationReason: models.InvocationReasonInitialization},
		e2eAppMetadata(), nil)

	require.Equal(t, models.ResultSuccessNewKeysEnrolled, first.Code)
	require.NotNil(t, first.ClientDirective)
	assert.True(t, first.ClientDirective.Valid())

	for _, name := range models.KeyBundleOrder() {
		bundle, err := store.GetKeyBundle(ctx, name)
		require.NoError(t, err)
		require.Len(t, bundle.Keys, 1, "bundle %s", name)

		active := bundle.ActiveKey()
		require.NotNil(t, active, "bundle %s has no active key", name)
		assert.Equal(t, models.KeyTypeP256, active.Type)
		assert.NotEmpty(t, active.PublicKey)
		assert.NotEmpty(t, active.PrivateKey)
	}

	identity, err := store.GetKeyBundle(ctx, models.KeyBundleDeviceIdentity)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceIdentityKeyHandle, identity.Keys[0].Handle)

	// Second attempt: every bundle reports its handle, the authority only
	// re-activates the newest one and asks for nothing new, so the attempt
	// ends after the sync round.
	second := newAttempt(t, store, server.URL).Enroll(ctx,
		models.ClientMetadata{InvocationReason: models.InvocationReasonPeriodic},
		e2eAppMetadata(), nil)

	assert.Equal(t, models.ResultSuccessNoNewKeysNeeded, second.Code)
	require.NotNil(t, second.ClientDirective)

	for _, name := range models.KeyBundleOrder() {
		bundle, err := store.GetKeyBundle(ctx, name)
		require.NoError(t, err)
		assert.Len(t, bundle.Keys, 1, "bundle %s grew unexpectedly", name)
		assert.NotNil(t, bundle.ActiveKey(), "bundle %s lost its active key", name)
	}
}

func TestEnrollment_EndToEnd_AuthorityUnreachable(t *testing.T) {
	server := startAuthority(t)
	url := server.URL
	server.Close()

	store, err := registry.NewStore(config.AgentStorage{
		Files: config.AgentFiles{RegistryPath: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)

	result := newAttempt(t, store, url).Enroll(context.Background(),
		models.ClientMetadata{InvocationReason: models.InvocationReasonInitialization},
		e2eAppMetadata(), nil)

	assert.Equal(t, models.ResultErrorSyncKeysAPICallOffline, result.Code)
	assert.Nil(t, result.ClientDirective)

	// Nothing may have been written to the registry.
	for _, name := range models.KeyBundleOrder() {
		bundle, err := store.GetKeyBundle(context.Background(), name)
		require.NoError(t, err)
		assert.Empty(t, bundle.Keys)
	}
}

func TestEnrollment_EndToEnd_WrongCredentials(t *testing.T) {
	server := startAuthority(t)

	store, err := registry.NewStore(config.AgentStorage{
		Files: config.AgentFiles{RegistryPath: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)

	factory, err := adapter.NewHTTPClientFactory(
		config.AgentAdapter{AuthorityAddress: server.URL, RequestTimeout: 5 * time.Second},
		config.AgentApp{
			TokenSignKey:  "not-the-authority-key",
			TokenIssuer:   e2eIssuer,
			TokenDuration: time.Hour,
			InstanceID:    e2eInstance,
		},
		logger.Nop(),
	)
	require.NoError(t, err)

	e := enroller.New(store, factory, crypto.NewKeyCreator(), crypto.NewKeyProofComputer(), enroller.Timeouts{}, logger.Nop())
	result := e.Enroll(context.Background(),
		models.ClientMetadata{InvocationReason: models.InvocationReasonInitialization},
		e2eAppMetadata(), nil)

	assert.Equal(t, models.ResultErrorSyncKeysAPICallAuthenticationError, result.Code)
}
