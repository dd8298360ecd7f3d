// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/MKhiriev/go-key-enroll/models"
)

// keyProofComputer is the private implementation of [KeyProofComputer].
type keyProofComputer struct{}

// NewKeyProofComputer constructs a [KeyProofComputer].
func NewKeyProofComputer() KeyProofComputer {
	return &keyProofComputer{}
}

// ComputeKeyProof implements [KeyProofComputer].
func (p *keyProofComputer) ComputeKeyProof(key models.Key, sessionID, salt string) ([]byte, error) {
	switch {
	case key.IsAsymmetric():
		return computeAsymmetricKeyProof(key, sessionID, salt)
	case key.IsSymmetric():
		return computeSymmetricKeyProof(key, sessionID, salt)
	default:
		return nil, fmt.Errorf("cannot prove possession of key type %q", key.Type)
	}
}

// computeAsymmetricKeyProof signs salt||sessionID with the key's private
// half. The authority verifies the signature against the enrolled public key.
func computeAsymmetricKeyProof(key models.Key, sessionID, salt string) ([]byte, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(key.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("parse private key of %q: %w", key.Handle, err)
	}

	private, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key of %q is %T, want an EC private key", key.Handle, parsed)
	}

	digest := sha256.Sum256([]byte(salt + sessionID))
	proof, err := ecdsa.SignASN1(rand.Reader, private, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign session id with %q: %w", key.Handle, err)
	}
	return proof, nil
}

// computeSymmetricKeyProof answers with an HMAC over the session id. The MAC
// key is not the raw material itself but an HKDF expansion bound to the salt
// and the key handle, so proofs never reuse the enrolled secret directly.
func computeSymmetricKeyProof(key models.Key, sessionID, salt string) ([]byte, error) {
	if len(key.SymmetricKey) == 0 {
		return nil, fmt.Errorf("symmetric key %q has no material", key.Handle)
	}

	macKey := make([]byte, 32)
	reader := hkdf.New(sha256.New, key.SymmetricKey, []byte(salt), []byte(key.Handle))
	if _, err := io.ReadFull(reader, macKey); err != nil {
		return nil, fmt.Errorf("derive proof key for %q: %w", key.Handle, err)
	}

	mac := hmac.New(sha256.New, macKey)
	mac.Write([]byte(sessionID))
	return mac.Sum(nil), nil
}
