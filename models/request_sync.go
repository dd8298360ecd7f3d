// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncKeysRequest opens an enrollment attempt. The client reports every key
// bundle it holds so the trust authority can decide which keys to activate,
// delete, or have the client create.
type SyncKeysRequest struct {
	// ApplicationName identifies the enrolling application to the
	// authority. It must match one of the device software packages in
	// the serialized client app metadata.
	ApplicationName string `json:"application_name"`

	// ClientVersion is the protocol client version string.
	ClientVersion string `json:"client_version"`

	// ClientMetadata describes this particular attempt.
	ClientMetadata ClientMetadata `json:"client_metadata"`

	// SerializedClientAppMetadata is the JSON-encoded ClientAppMetadata,
	// carried opaquely.
	SerializedClientAppMetadata []byte `json:"serialized_client_app_metadata"`

	// PolicyReference echoes the policy of the client directive the
	// device currently honors, when it has one.
	PolicyReference *PolicyReference `json:"policy_reference,omitempty"`

	// SyncSingleKeyRequests holds one entry per key bundle, in canonical
	// bundle order. The authority's response entries align to this order
	// by position.
	SyncSingleKeyRequests []SyncSingleKeyRequest `json:"sync_single_key_requests"`
}

// SyncSingleKeyRequest reports the device's current keys for one bundle.
type SyncSingleKeyRequest struct {
	// KeyName is the bundle name.
	KeyName KeyBundleName `json:"key_name"`

	// KeyHandles lists the bundle's key handles in the bundle's
	// insertion order. The key_actions of the matching response entry
	// align to this order by position.
	KeyHandles []string `json:"key_handles"`

	// PolicyReference echoes the policy of the bundle's key directive,
	// when the bundle has one.
	PolicyReference *PolicyReference `json:"policy_reference,omitempty"`
}
