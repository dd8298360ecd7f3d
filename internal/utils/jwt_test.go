package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateDeviceToken_Success(t *testing.T) {
	issuer := "test-issuer"
	deviceID := "instance-123"
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateDeviceToken(issuer, deviceID, duration, key)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Token == nil {
		t.Error("expected non-nil jwt.Token object")
	}

	// Verify claims
	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		t.Fatal("could not cast claims to RegisteredClaims")
	}
	if claims.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, claims.Issuer)
	}
	if claims.Subject != deviceID {
		t.Errorf("expected subject '%s', got %s", deviceID, claims.Subject)
	}
}

func TestGenerateDeviceToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		deviceID string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", "dev", time.Hour, "key"},
		{"empty device id", "iss", "", time.Hour, "key"},
		{"zero duration", "iss", "dev", 0, "key"},
		{"empty key", "iss", "dev", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateDeviceToken(tt.issuer, tt.deviceID, tt.duration, tt.key)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseDeviceToken_Success(t *testing.T) {
	issuer := "test-issuer"
	deviceID := "instance-456"
	key := "secret-key"
	duration := time.Minute * 5

	// First generate a valid token
	genToken, _ := GenerateDeviceToken(issuer, deviceID, duration, key)

	// Now validate it
	parsedToken, err := ValidateAndParseDeviceToken(genToken.SignedString, key, issuer)

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.DeviceID != deviceID {
		t.Errorf("expected deviceID %s, got %s", deviceID, parsedToken.DeviceID)
	}
}

func TestValidateAndParseDeviceToken_InvalidKey(t *testing.T) {
	issuer := "test-issuer"
	key := "correct-key"
	wrongKey := "wrong-key"

	genToken, _ := GenerateDeviceToken(issuer, "dev", time.Hour, key)

	_, err := ValidateAndParseDeviceToken(genToken.SignedString, wrongKey, issuer)
	if err == nil {
		t.Error("expected error due to signature mismatch, got nil")
	}
}

func TestValidateAndParseDeviceToken_Expired(t *testing.T) {
	issuer := "test-issuer"
	key := "key"
	// Token that expired 1 second ago
	genToken, _ := GenerateDeviceToken(issuer, "dev", -time.Second, key)

	_, err := ValidateAndParseDeviceToken(genToken.SignedString, key, issuer)
	if err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

func TestValidateAndParseDeviceToken_WrongIssuer(t *testing.T) {
	key := "key"
	genToken, _ := GenerateDeviceToken("real-issuer", "dev", time.Hour, key)

	_, err := ValidateAndParseDeviceToken(genToken.SignedString, key, "fake-issuer")
	if err == nil {
		t.Error("expected error for issuer mismatch, got nil")
	}
}

func TestValidateAndParseDeviceToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseDeviceToken("not.a.token", "key", "iss")
	if err == nil {
		t.Error("expected error for malformed token string, got nil")
	}
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("expected 'abc.def.ghi', got '%s'", token)
	}

	if _, err = ParseBearerToken("Bearer"); err == nil {
		t.Error("expected error for header without token, got nil")
	}
	if _, err = ParseBearerToken(""); err == nil {
		t.Error("expected error for empty header, got nil")
	}
}

func TestParseDeviceIDFromJWT(t *testing.T) {
	genToken, _ := GenerateDeviceToken("iss", "instance-7", time.Hour, "key")

	deviceID, err := ParseDeviceIDFromJWT(genToken.SignedString)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if deviceID != "instance-7" {
		t.Errorf("expected 'instance-7', got '%s'", deviceID)
	}

	if _, err = ParseDeviceIDFromJWT("garbage"); err == nil {
		t.Error("expected error for malformed token, got nil")
	}
}
