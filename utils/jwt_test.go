package utils

import (
	"testing"
	"time"

	"gorilla-shop/config"
)

func setTestConfig(t *testing.T, expiry time.Duration) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = &config.Config{JWTSecret: "test-secret", JWTExpiry: expiry}
	t.Cleanup(func() { config.AppConfig = old })
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t, time.Hour)

	token, err := GenerateToken(42, "gorilla@example.com", "customer")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "gorilla@example.com" || claims.Role != "customer" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
}

func TestValidateGarbageToken(t *testing.T) {
	setTestConfig(t, time.Hour)

	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("Garbage token should not validate")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	setTestConfig(t, -time.Minute)

	token, err := GenerateToken(1, "a@b.c", "customer")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Error("Expired token should not validate")
	}
}

func TestValidateTamperedSignature(t *testing.T) {
	setTestConfig(t, time.Hour)

	token, _ := GenerateToken(1, "a@b.c", "admin")
	config.AppConfig.JWTSecret = "different-secret"

	if _, err := ValidateToken(token); err == nil {
		t.Error("Token signed with another secret should not validate")
	}
}
