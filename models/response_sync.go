// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ServerStatus is the trust authority's overall verdict on a sync request.
type ServerStatus string

const (
	// ServerStatusOK means the response is complete and actionable.
	ServerStatusOK ServerStatus = "ok"

	// ServerStatusOverloaded means the authority refused the attempt;
	// the client should come back later.
	ServerStatusOverloaded ServerStatus = "server_overloaded"
)

// Valid reports whether the status is one of the recognized values.
func (s ServerStatus) Valid() bool {
	return s == ServerStatusOK || s == ServerStatusOverloaded
}

// KeyAction is the authority's instruction for one existing key. Actions
// arrive positionally: key_actions[i] applies to the i-th handle the client
// reported for the bundle.
type KeyAction string

const (
	// KeyActionNone leaves the key as it is.
	KeyActionNone KeyAction = "none"

	// KeyActionActivate makes the key the bundle's active key.
	KeyActionActivate KeyAction = "activate"

	// KeyActionDeactivate demotes the key without removing it.
	KeyActionDeactivate KeyAction = "deactivate"

	// KeyActionDelete removes the key from the device.
	KeyActionDelete KeyAction = "delete"
)

// Valid reports whether the action is one of the recognized values.
func (a KeyAction) Valid() bool {
	switch a {
	case KeyActionNone, KeyActionActivate, KeyActionDeactivate, KeyActionDelete:
		return true
	default:
		return false
	}
}

// KeyCreation says whether the authority wants a new key for a bundle and
// with which status it should be stored.
type KeyCreation string

const (
	// KeyCreationNone requests no new key.
	KeyCreationNone KeyCreation = "none"

	// KeyCreationActive requests a new key that becomes the bundle's
	// active key once enrolled.
	KeyCreationActive KeyCreation = "active"

	// KeyCreationInactive requests a new key stored as inactive.
	KeyCreationInactive KeyCreation = "inactive"
)

// Valid reports whether the creation instruction is one of the recognized
// values.
func (c KeyCreation) Valid() bool {
	switch c {
	case KeyCreationNone, KeyCreationActive, KeyCreationInactive:
		return true
	default:
		return false
	}
}

// KeyStatus converts the creation instruction into the status the new key
// is stored with. Only meaningful for active and inactive instructions.
func (c KeyCreation) KeyStatus() KeyStatus {
	if c == KeyCreationActive {
		return KeyStatusActive
	}
	return KeyStatusInactive
}

// SyncKeysResponse is the trust authority's answer to a SyncKeysRequest.
//
// SyncSingleKeyResponses is strictly positional: the i-th entry answers the
// i-th sync_single_key_request, so both sides must use the canonical bundle
// order.
type SyncKeysResponse struct {
	// ServerStatus is the overall verdict.
	ServerStatus ServerStatus `json:"server_status"`

	// RandomSessionID identifies this enrollment session. It must be
	// echoed in the EnrollKeysRequest and is the payload of every key
	// proof.
	RandomSessionID string `json:"random_session_id"`

	// ClientDirective is the authority's scheduling instruction. The
	// engine rejects the response when it is missing or invalid.
	ClientDirective *ClientDirective `json:"client_directive,omitempty"`

	// ServerEphemeralDH is the authority's ephemeral Diffie-Hellman
	// public key (PKIX DER), present when symmetric keys may need to be
	// created.
	ServerEphemeralDH []byte `json:"server_ephemeral_dh,omitempty"`

	// SyncSingleKeyResponses holds one entry per requested bundle, in
	// the order of the request.
	SyncSingleKeyResponses []SyncSingleKeyResponse `json:"sync_single_key_responses"`
}

// SyncSingleKeyResponse carries the authority's instructions for one bundle.
type SyncSingleKeyResponse struct {
	// KeyActions holds one action per key handle the client reported,
	// aligned by position.
	KeyActions []KeyAction `json:"key_actions"`

	// KeyCreation says whether to create a new key for the bundle.
	KeyCreation KeyCreation `json:"key_creation"`

	// KeyType is the type of key to create. Required when KeyCreation
	// requests one.
	KeyType KeyType `json:"key_type,omitempty"`

	// KeyDirective is new policy metadata for the bundle, stored only
	// after the new key enrolls successfully.
	KeyDirective *KeyDirective `json:"key_directive,omitempty"`
}
