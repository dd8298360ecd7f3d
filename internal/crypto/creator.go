// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/MKhiriev/go-key-enroll/internal/utils"
	"github.com/MKhiriev/go-key-enroll/models"
)

// keyCreator is the private implementation of [KeyCreator].
type keyCreator struct {
	uuid *utils.UUIDGenerator
}

// NewKeyCreator constructs a [KeyCreator]. Asymmetric keys are generated on
// the NIST P-256 curve; symmetric keys are derived from an ECDH handshake
// with the authority's ephemeral key via HKDF-SHA256 keyed per bundle.
func NewKeyCreator() KeyCreator {
	return &keyCreator{uuid: utils.NewUUIDGenerator()}
}

// CreateKeys implements [KeyCreator]. The client ephemeral Diffie-Hellman
// pair is generated at most once per call and shared by every symmetric
// derivation; per-bundle material differs through the HKDF info parameter.
func (c *keyCreator) CreateKeys(instructions map[models.KeyBundleName]models.KeyCreationInstruction, serverEphemeralDH []byte) (map[models.KeyBundleName]models.Key, []byte, error) {
	newKeys := make(map[models.KeyBundleName]models.Key, len(instructions))

	var clientEphemeral *ecdh.PrivateKey
	var sharedSecret []byte

	for name, instruction := range instructions {
		handle := instruction.Handle
		if handle == "" {
			handle = c.uuid.Generate()
		}

		switch {
		case instruction.Type.IsAsymmetric():
			key, err := createAsymmetricKey(handle, instruction)
			if err != nil {
				return nil, nil, fmt.Errorf("create asymmetric key for bundle %q: %w", name, err)
			}
			newKeys[name] = key

		case instruction.Type.IsSymmetric():
			// One handshake per call, lazily on the first symmetric instruction.
			if clientEphemeral == nil {
				serverPublic, err := parseServerEphemeralDH(serverEphemeralDH)
				if err != nil {
					return nil, nil, err
				}
				clientEphemeral, err = ecdh.P256().GenerateKey(rand.Reader)
				if err != nil {
					return nil, nil, fmt.Errorf("generate client ephemeral key: %w", err)
				}
				sharedSecret, err = clientEphemeral.ECDH(serverPublic)
				if err != nil {
					return nil, nil, fmt.Errorf("compute shared secret: %w", err)
				}
			}

			material, err := deriveKeyMaterial(sharedSecret, string(name), symmetricKeyLen(instruction.Type))
			if err != nil {
				return nil, nil, fmt.Errorf("derive key material for bundle %q: %w", name, err)
			}
			newKeys[name] = models.NewSymmetricKey(handle, instruction.Status, instruction.Type, material)

		default:
			return nil, nil, fmt.Errorf("unsupported key type %q for bundle %q", instruction.Type, name)
		}
	}

	var clientEphemeralDER []byte
	if clientEphemeral != nil {
		der, err := x509.MarshalPKIXPublicKey(clientEphemeral.PublicKey())
		if err != nil {
			return nil, nil, fmt.Errorf("marshal client ephemeral key: %w", err)
		}
		clientEphemeralDER = der
	}

	return newKeys, clientEphemeralDER, nil
}

func createAsymmetricKey(handle string, instruction models.KeyCreationInstruction) (models.Key, error) {
	private, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return models.Key{}, fmt.Errorf("generate key pair: %w", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&private.PublicKey)
	if err != nil {
		return models.Key{}, fmt.Errorf("marshal public key: %w", err)
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(private)
	if err != nil {
		return models.Key{}, fmt.Errorf("marshal private key: %w", err)
	}

	return models.NewAsymmetricKey(handle, instruction.Status, instruction.Type, publicDER, privateDER), nil
}

func parseServerEphemeralDH(der []byte) (*ecdh.PublicKey, error) {
	if len(der) == 0 {
		return nil, fmt.Errorf("symmetric key requested without a server ephemeral key")
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse server ephemeral key: %w", err)
	}

	public, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("server ephemeral key is %T, want an EC public key", parsed)
	}

	ecdhPublic, err := public.ECDH()
	if err != nil {
		return nil, fmt.Errorf("server ephemeral key is not usable for ECDH: %w", err)
	}
	return ecdhPublic, nil
}

// deriveKeyMaterial expands the ECDH shared secret into length bytes of key
// material bound to one bundle through the HKDF info parameter.
func deriveKeyMaterial(secret []byte, bundleName string, length int) ([]byte, error) {
	material := make([]byte, length)
	reader := hkdf.New(sha256.New, secret, []byte(models.KeyMaterialSalt), []byte(bundleName))
	if _, err := io.ReadFull(reader, material); err != nil {
		return nil, err
	}
	return material, nil
}

func symmetricKeyLen(keyType models.KeyType) int {
	if keyType == models.KeyTypeRaw128 {
		return 16
	}
	return 32
}
