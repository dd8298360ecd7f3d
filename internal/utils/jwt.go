package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-key-enroll/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateDeviceToken creates a signed HMAC-SHA256 JWT token the device
// presents when calling the enrollment API.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the device instance identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	deviceID      - instance ID of the device the token is issued for
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns:
//
//	models.DeviceToken - contains the signed token string and the jwt.Token object
//	error              - non-nil if parameters are invalid or signing fails
//
// Example usage:
//
//	token, err := utils.GenerateDeviceToken("go-key-enroll", "instance-42", time.Hour, "secret")
func GenerateDeviceToken(issuer, deviceID string, tokenDuration time.Duration, signKey string) (models.DeviceToken, error) {
	if issuer == "" || deviceID == "" || tokenDuration == 0 || signKey == "" {
		return models.DeviceToken{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   deviceID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.DeviceToken{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.DeviceToken{Token: token, SignedString: tokenString, DeviceID: deviceID}, nil
}

// ValidateAndParseDeviceToken validates the given JWT token string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence, cached as DeviceID
//
// Parameters:
//
//	tokenString   - the raw signed JWT string to validate and parse
//	tokenSignKey  - secret key used to verify the token signature
//	tokenIssuer   - expected issuer value to validate against the iss claim
//
// Returns:
//
//	models.DeviceToken - contains the parsed jwt.Token object and the extracted DeviceID
//	error              - non-nil if validation fails or claims are missing
//
// Example usage:
//
//	token, err := utils.ValidateAndParseDeviceToken(rawToken, "secret", "go-key-enroll")
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseDeviceToken(tokenString, tokenSignKey, tokenIssuer string) (models.DeviceToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.DeviceToken{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.DeviceToken{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	deviceID, err := token.Claims.GetSubject()
	if err != nil {
		return models.DeviceToken{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if deviceID == "" {
		return models.DeviceToken{}, errors.New("empty subject error")
	}

	return models.DeviceToken{Token: token, DeviceID: deviceID}, err
}

func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func ParseDeviceIDFromJWT(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty subject")
	}
	return sub, nil
}
