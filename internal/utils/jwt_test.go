package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateToken(secret, userID, "marker-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	gotID, gotMarker, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if gotID != userID {
		t.Errorf("expected user id %s, got %s", userID, gotID)
	}
	if gotMarker != "marker-1" {
		t.Errorf("expected session marker marker-1, got %q", gotMarker)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", uuid.New(), "m", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected parse failure with the wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New(), "m", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected parse failure for an expired token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("expected mismatched password to fail")
	}
}
