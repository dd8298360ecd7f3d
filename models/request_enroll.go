// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EnrollKeysRequest submits freshly created keys for enrollment. It closes
// the attempt opened by the SyncKeysRequest whose response carried
// RandomSessionID.
type EnrollKeysRequest struct {
	// RandomSessionID is the session identifier issued in the
	// SyncKeysResponse.
	RandomSessionID string `json:"random_session_id"`

	// ClientEphemeralDH is the client's ephemeral Diffie-Hellman public
	// key (PKIX DER), present when symmetric keys were derived.
	ClientEphemeralDH []byte `json:"client_ephemeral_dh,omitempty"`

	// EnrollSingleKeyRequests holds one entry per newly created key.
	EnrollSingleKeyRequests []EnrollSingleKeyRequest `json:"enroll_single_key_requests"`
}

// EnrollSingleKeyRequest enrolls one newly created key.
type EnrollSingleKeyRequest struct {
	// KeyName is the bundle the key belongs to.
	KeyName KeyBundleName `json:"key_name"`

	// NewKeyHandle is the handle assigned to the new key.
	NewKeyHandle string `json:"new_key_handle"`

	// KeyMaterial is the public half of an asymmetric key (PKIX DER).
	// Symmetric keys enroll with no material; the authority derives the
	// same secret from the Diffie-Hellman exchange.
	KeyMaterial []byte `json:"key_material,omitempty"`

	// KeyProof demonstrates possession of the new key. It is computed
	// over the session identifier with the protocol's key-proof salt.
	KeyProof []byte `json:"key_proof"`
}
