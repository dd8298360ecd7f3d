package crypto

import "github.com/MKhiriev/go-key-enroll/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyCreator produces the concrete keys the trust authority asked for.
// It knows nothing about the network or the registry; it turns creation
// instructions into key material and nothing else.
type KeyCreator interface {
	// CreateKeys generates one key per instruction.
	//
	// serverEphemeralDH is the authority's ephemeral Diffie-Hellman public
	// key in PKIX DER form. It is required as soon as any instruction asks
	// for a symmetric type; asymmetric-only batches may pass nil.
	//
	// The returned map holds the new key for every instructed bundle. When
	// at least one symmetric key was derived, clientEphemeralDH carries the
	// client's own ephemeral public key (PKIX DER) for disclosure to the
	// authority; otherwise it is nil.
	CreateKeys(instructions map[models.KeyBundleName]models.KeyCreationInstruction, serverEphemeralDH []byte) (newKeys map[models.KeyBundleName]models.Key, clientEphemeralDH []byte, err error)
}

// KeyProofComputer computes proofs of key possession. A proof binds the key
// to the enrollment session: the authority checks it against the public (or
// shared) material before accepting the key.
type KeyProofComputer interface {
	// ComputeKeyProof proves possession of key for the given session.
	//
	// Asymmetric keys sign salt||sessionID with ECDSA P-256/SHA-256.
	// Symmetric keys answer with an HMAC-SHA256 over sessionID, keyed by
	// HKDF-SHA256(material, salt, info=handle).
	//
	// An empty proof is never valid; callers treat it as a failure.
	ComputeKeyProof(key models.Key, sessionID, salt string) ([]byte, error)
}
