package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DeviceToken wraps the JWT a device presents when calling the enrollment
// API.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be sent in the Authorization header.
//
// DeviceID is a cached copy of the "sub" (subject) claim: the device
// instance identifier the token was issued for.
type DeviceToken struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string
	// form is meaningful outside the process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	// Excluded from JSON serialization; use [DeviceToken.String].
	SignedString string `json:"-"`

	// DeviceID is the device instance identifier from the "sub" claim.
	DeviceID string `json:"-"`
}

// GetDeviceID extracts the device identifier from the token's "sub"
// (subject) claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *DeviceToken) GetDeviceID() (string, error) {
	deviceID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting DeviceID from token: %w", err)
	}
	if deviceID == "" {
		return "", fmt.Errorf("token subject is empty")
	}

	return deviceID, nil
}

// String returns the compact JWS serialization of the token
// (the signed, base64url-encoded header.payload.signature string).
// It implements the [fmt.Stringer] interface.
func (t *DeviceToken) String() string {
	return t.SignedString
}
