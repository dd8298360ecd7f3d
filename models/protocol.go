// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Protocol constants shared by every client of the enrollment API. Both
// sides must agree on these values byte for byte.
const (
	// ApplicationName is the identifier the agent enrolls under. The
	// device software package list in the client app metadata must
	// contain it.
	ApplicationName = "com.gokeyenroll.agent"

	// ClientVersion is the enrollment protocol client version.
	ClientVersion = "1.0.0"

	// DeviceIdentityKeyHandle is the fixed handle of the single key in
	// the device identity bundle. The protocol pins it so the authority
	// can address the identity key without a handle lookup.
	DeviceIdentityKeyHandle = "device_key"

	// KeyProofSalt is the salt for proofs of key possession. Proofs are
	// computed over the enrollment session id with this salt.
	KeyProofSalt = "go-key-enroll key proof"

	// KeyMaterialSalt is the salt for deriving symmetric key material
	// from the Diffie-Hellman shared secret.
	KeyMaterialSalt = "go-key-enroll key material"
)
