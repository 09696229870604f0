package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager_GenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.Generate("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected user ID user-1, got %s", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %s", claims.Email)
	}
}

func TestJWTManager_VerifyWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", time.Hour)

	token, err := manager.Generate("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := NewJWTManager("secret-b", time.Hour)
	_, err = other.Verify(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_VerifyExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Hour)

	token, err := manager.Generate("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	_, err = manager.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTManager_VerifyGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	_, err := manager.Verify("not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
