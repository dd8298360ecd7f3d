// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package agent wires the enrollment agent together: configuration, the key
// registry, the authority transport, the crypto collaborators, and the
// scheduler that keeps the device enrolled.
package agent

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-key-enroll/internal/adapter"
	"github.com/MKhiriev/go-key-enroll/internal/config"
	"github.com/MKhiriev/go-key-enroll/internal/crypto"
	"github.com/MKhiriev/go-key-enroll/internal/enroller"
	"github.com/MKhiriev/go-key-enroll/internal/logger"
	"github.com/MKhiriev/go-key-enroll/internal/registry"
	"github.com/MKhiriev/go-key-enroll/internal/workers"
	"github.com/MKhiriev/go-key-enroll/models"
)

// App is the assembled enrollment agent.
type App struct {
	scheduler *workers.EnrollmentScheduler
	logger    *logger.Logger
}

// NewApp builds the agent from its configuration: registry store (SQLite or
// JSON file per the storage settings), HTTP client factory for the trust
// authority, key creator and proof computer, and the enrollment scheduler
// driving fresh enroller instances.
func NewApp(cfg *config.AgentConfig, log *logger.Logger) (*App, error) {
	store, err := registry.NewStore(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create key registry: %w", err)
	}

	clientFactory, err := adapter.NewHTTPClientFactory(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create authority client factory: %w", err)
	}

	keyCreator := crypto.NewKeyCreator()
	proofComputer := crypto.NewKeyProofComputer()

	timeouts := enroller.Timeouts{
		SyncKeysResponse:   cfg.Enroller.SyncKeysTimeout,
		KeyCreation:        cfg.Enroller.KeyCreationTimeout,
		EnrollKeysResponse: cfg.Enroller.EnrollKeysTimeout,
	}

	// Enrollers are single-use; the scheduler mints one per attempt.
	newEnroller := func() workers.Enroller {
		return enroller.New(store, clientFactory, keyCreator, proofComputer, timeouts, log)
	}

	softwareVersion := cfg.App.Version
	if softwareVersion == "" {
		softwareVersion = models.ClientVersion
	}
	appMetadata := models.ClientAppMetadata{
		InstanceID:  cfg.App.InstanceID,
		DeviceModel: cfg.App.DeviceModel,
		ApplicationSpecificMetadata: []models.ApplicationSpecificMetadata{
			{DeviceSoftwarePackage: models.ApplicationName, SoftwareVersion: softwareVersion},
		},
	}

	scheduler := workers.NewEnrollmentScheduler(newEnroller, store, appMetadata, cfg.Workers, log)

	return &App{scheduler: scheduler, logger: log}, nil
}

// Run starts the enrollment schedule and blocks until ctx is cancelled,
// then stops the scheduler and waits for the in-flight attempt to wind
// down.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("enrollment agent starting")
	a.scheduler.Start(ctx)

	<-ctx.Done()

	a.logger.Info().Msg("enrollment agent shutting down")
	a.scheduler.Stop()
	return nil
}
