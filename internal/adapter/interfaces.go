// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the trust authority's key-enrollment API.
//
// The primary abstraction is [Client], which decouples the enrollment engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// minted by [HTTPClientFactory]; the engine requests a fresh client from a
// [ClientFactory] for every protocol phase so that authentication material is
// never reused across calls.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrAuthentication] for 401, [ErrEndpointNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-key-enroll/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/authority_client_mock.go -package=mock

// Client defines transport-agnostic communication with the trust authority's
// enrollment API. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
//
// A Client is single-phase: callers obtain one from a [ClientFactory], issue
// exactly one call, and discard it.
type Client interface {
	// SyncKeys sends the first-round request declaring the device's current
	// key bundles and returns the authority's response describing key actions
	// and key-creation demands. Returns an error wrapping one of the package
	// sentinels if the request fails, the server responds with a non-2xx
	// status, or the response body cannot be decoded.
	SyncKeys(ctx context.Context, req models.SyncKeysRequest) (models.SyncKeysResponse, error)

	// EnrollKeys sends the second-round request presenting newly created key
	// material and possession proofs under the session established by
	// SyncKeys. Returns an error wrapping one of the package sentinels if the
	// request fails, the server responds with a non-2xx status, or the
	// response body cannot be decoded.
	EnrollKeys(ctx context.Context, req models.EnrollKeysRequest) (models.EnrollKeysResponse, error)
}

// ClientFactory mints [Client] instances. The enrollment engine calls
// NewClient once per protocol phase; each returned client carries its own
// connection state and a freshly issued device token.
type ClientFactory interface {
	// NewClient returns a new single-phase Client.
	NewClient() Client
}
