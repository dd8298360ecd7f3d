// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry persists the device's enrollment key material: the key
// bundles known to the trust authority, their per-bundle key directives, and
// the client directive that drives the enrollment schedule.
//
// Two backends implement [Store]: a JSON file store ([NewFileStore]) suited
// for simple deployments and tests, and a SQLite store ([NewSQLiteStore])
// for installations that already carry a database. [NewStore] selects the
// backend from configuration.
package registry

import (
	"context"

	"github.com/MKhiriev/go-key-enroll/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/registry_store_mock.go -package=mock

// Store is the device-local key registry. The enrollment engine reads bundles
// from it when building requests and writes the authority's verdicts back:
// key deletions and activations take effect immediately on receipt, newly
// enrolled keys and directives after the authority confirms them.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// GetKeyBundle returns a snapshot of the named bundle. A bundle with no
	// stored keys is returned as an empty bundle carrying only the name; an
	// error indicates a storage failure, never absence.
	GetKeyBundle(ctx context.Context, name models.KeyBundleName) (models.KeyBundle, error)

	// AddEnrolledKey inserts key into the named bundle, replacing any stored
	// key with the same handle. If key is active, all other keys in the
	// bundle are demoted to inactive.
	AddEnrolledKey(ctx context.Context, name models.KeyBundleName, key models.Key) error

	// DeleteKey removes the key with the given handle from the named bundle.
	// Deleting an absent key is not an error.
	DeleteKey(ctx context.Context, name models.KeyBundleName, handle string) error

	// SetActiveKey marks the key with the given handle active and demotes
	// all other keys in the bundle to inactive. Returns [ErrKeyNotFound] if
	// the bundle or handle is unknown.
	SetActiveKey(ctx context.Context, name models.KeyBundleName, handle string) error

	// SetKeyDirective stores the authority's directive for the named bundle,
	// creating the bundle entry if it does not exist yet.
	SetKeyDirective(ctx context.Context, name models.KeyBundleName, directive models.KeyDirective) error

	// GetClientDirective returns the most recently stored client directive,
	// or nil if the authority has not issued one yet.
	GetClientDirective(ctx context.Context) (*models.ClientDirective, error)

	// SetClientDirective stores directive as the current client directive,
	// replacing any previous one.
	SetClientDirective(ctx context.Context, directive models.ClientDirective) error
}
