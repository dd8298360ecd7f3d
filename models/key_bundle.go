// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// KeyBundleName names one of the fixed key groups the device enrolls with
// the trust authority. The set is closed; the protocol relies on every
// client knowing the same names.
type KeyBundleName string

const (
	// KeyBundleDeviceIdentity is the device's primary identity key pair.
	// Its single key always uses the protocol-fixed handle
	// DeviceIdentityKeyHandle.
	KeyBundleDeviceIdentity KeyBundleName = "device_identity"

	// KeyBundleRemoteUnlock holds keys used to authorize unlock requests
	// from paired devices.
	KeyBundleRemoteUnlock KeyBundleName = "remote_unlock"

	// KeyBundleMessageRelay holds keys used to authenticate relayed
	// device-to-device messages.
	KeyBundleMessageRelay KeyBundleName = "message_relay"
)

// Valid reports whether the name is one of the recognized bundles.
func (n KeyBundleName) Valid() bool {
	switch n {
	case KeyBundleDeviceIdentity, KeyBundleRemoteUnlock, KeyBundleMessageRelay:
		return true
	default:
		return false
	}
}

// KeyBundleOrder returns every bundle name in canonical order.
//
// The enrollment protocol matches sync_single_key_responses to
// sync_single_key_requests by position, so every attempt must build its
// request in exactly this order and interpret the response the same way.
func KeyBundleOrder() []KeyBundleName {
	return []KeyBundleName{
		KeyBundleDeviceIdentity,
		KeyBundleRemoteUnlock,
		KeyBundleMessageRelay,
	}
}

// KeyBundle is the device's set of enrolled keys for one bundle name,
// together with the key directive the trust authority last attached to it.
//
// Keys preserves insertion order. The order matters: key handles are
// reported to the authority in this order and the authority's per-key
// actions come back aligned to it.
type KeyBundle struct {
	// Name of the bundle.
	Name KeyBundleName `json:"name"`

	// Keys in insertion order. At most one has KeyStatusActive.
	Keys []Key `json:"keys"`

	// KeyDirective is the authority's policy metadata for this bundle,
	// nil until one has been received.
	KeyDirective *KeyDirective `json:"key_directive,omitempty"`
}

// NewKeyBundle returns an empty bundle for the given name.
func NewKeyBundle(name KeyBundleName) KeyBundle {
	return KeyBundle{Name: name}
}

// Key returns the key with the given handle, or nil if absent.
func (b *KeyBundle) Key(handle string) *Key {
	for i := range b.Keys {
		if b.Keys[i].Handle == handle {
			return &b.Keys[i]
		}
	}
	return nil
}

// ActiveKey returns the bundle's active key, or nil when none is active.
func (b *KeyBundle) ActiveKey() *Key {
	for i := range b.Keys {
		if b.Keys[i].Status == KeyStatusActive {
			return &b.Keys[i]
		}
	}
	return nil
}

// Handles returns every key handle in insertion order.
func (b *KeyBundle) Handles() []string {
	handles := make([]string, 0, len(b.Keys))
	for i := range b.Keys {
		handles = append(handles, b.Keys[i].Handle)
	}
	return handles
}

// AddKey appends a key, replacing any existing key with the same handle in
// place. When the added key is active, every other key is demoted to
// inactive so the single-active-key invariant holds.
func (b *KeyBundle) AddKey(key Key) {
	if key.Status == KeyStatusActive {
		for i := range b.Keys {
			b.Keys[i].Status = KeyStatusInactive
		}
	}

	if existing := b.Key(key.Handle); existing != nil {
		*existing = key
		return
	}
	b.Keys = append(b.Keys, key)
}

// DeleteKey removes the key with the given handle, preserving the order of
// the remaining keys. Removing an unknown handle is a no-op.
func (b *KeyBundle) DeleteKey(handle string) {
	for i := range b.Keys {
		if b.Keys[i].Handle == handle {
			b.Keys = append(b.Keys[:i], b.Keys[i+1:]...)
			return
		}
	}
}

// SetActiveKey promotes the key with the given handle to active and demotes
// every other key. Returns false if the handle is unknown, in which case
// nothing changes.
func (b *KeyBundle) SetActiveKey(handle string) bool {
	target := b.Key(handle)
	if target == nil {
		return false
	}
	for i := range b.Keys {
		b.Keys[i].Status = KeyStatusInactive
	}
	target.Status = KeyStatusActive
	return true
}
