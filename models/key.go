// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// KeyType identifies the cryptographic algorithm family of a key.
// Values travel on the wire as strings and must be validated on receipt;
// an unrecognized value is rejected, never defaulted.
type KeyType string

const (
	// KeyTypeRaw128 is a 128-bit symmetric key derived via the
	// Diffie-Hellman handshake with the trust authority.
	KeyTypeRaw128 KeyType = "raw128"

	// KeyTypeRaw256 is a 256-bit symmetric key derived via the
	// Diffie-Hellman handshake with the trust authority.
	KeyTypeRaw256 KeyType = "raw256"

	// KeyTypeP256 is an asymmetric key pair on the NIST P-256 curve.
	KeyTypeP256 KeyType = "p256"
)

// Valid reports whether the key type is one of the recognized values.
func (t KeyType) Valid() bool {
	switch t {
	case KeyTypeRaw128, KeyTypeRaw256, KeyTypeP256:
		return true
	default:
		return false
	}
}

// IsSymmetric reports whether keys of this type carry shared secret material.
func (t KeyType) IsSymmetric() bool {
	return t == KeyTypeRaw128 || t == KeyTypeRaw256
}

// IsAsymmetric reports whether keys of this type are public/private pairs.
func (t KeyType) IsAsymmetric() bool {
	return t == KeyTypeP256
}

// KeyStatus marks whether a key is the one currently in use for its bundle.
type KeyStatus string

const (
	// KeyStatusActive marks the single key of a bundle that is currently
	// used for signing, proving and deriving. At most one key per bundle
	// holds this status.
	KeyStatusActive KeyStatus = "active"

	// KeyStatusInactive marks enrolled keys kept for rotation or rollback.
	KeyStatusInactive KeyStatus = "inactive"
)

// Valid reports whether the status is one of the recognized values.
func (s KeyStatus) Valid() bool {
	return s == KeyStatusActive || s == KeyStatusInactive
}

// Key is one enrolled cryptographic key held by the device.
//
// For asymmetric keys PublicKey holds the PKIX DER encoding and PrivateKey
// the PKCS #8 DER encoding. For symmetric keys the shared secret lives in
// SymmetricKey and the other two fields are empty. Secret material never
// leaves the device; only PublicKey is ever disclosed to the trust authority.
type Key struct {
	// Handle uniquely identifies the key within its bundle.
	Handle string `json:"handle"`

	// Status says whether this key is the bundle's active key.
	Status KeyStatus `json:"status"`

	// Type is the algorithm family of the key.
	Type KeyType `json:"type"`

	// PublicKey is the PKIX DER public half of an asymmetric key.
	PublicKey []byte `json:"public_key,omitempty"`

	// PrivateKey is the PKCS #8 DER private half of an asymmetric key.
	PrivateKey []byte `json:"private_key,omitempty"`

	// SymmetricKey is the raw shared secret of a symmetric key.
	SymmetricKey []byte `json:"symmetric_key,omitempty"`
}

// NewAsymmetricKey builds a P-256 key from its DER-encoded halves.
func NewAsymmetricKey(handle string, status KeyStatus, keyType KeyType, publicKey, privateKey []byte) Key {
	return Key{
		Handle:     handle,
		Status:     status,
		Type:       keyType,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}
}

// NewSymmetricKey builds a raw symmetric key.
func NewSymmetricKey(handle string, status KeyStatus, keyType KeyType, material []byte) Key {
	return Key{
		Handle:       handle,
		Status:       status,
		Type:         keyType,
		SymmetricKey: material,
	}
}

// IsAsymmetric reports whether the key is a public/private pair.
func (k Key) IsAsymmetric() bool {
	return k.Type.IsAsymmetric()
}

// IsSymmetric reports whether the key is a shared secret.
func (k Key) IsSymmetric() bool {
	return k.Type.IsSymmetric()
}

// KeyCreationInstruction tells the key creator what to generate for one
// bundle after the trust authority requested a new key.
type KeyCreationInstruction struct {
	// Status the new key should be stored with once enrolled.
	Status KeyStatus

	// Type of key to generate.
	Type KeyType

	// Handle to assign to the new key. Empty means the creator picks one;
	// the device identity bundle pins it to DeviceIdentityKeyHandle.
	Handle string
}
