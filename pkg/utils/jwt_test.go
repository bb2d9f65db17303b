package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	token, err := m.GenerateAccessToken(id, "lan", "Lan Nguyen", "user")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != id {
		t.Errorf("user id = %v, want %v", claims.UserID, id)
	}
	if claims.Username != "lan" || claims.FullName != "Lan Nguyen" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	token, err := m.GenerateRefreshToken(id)
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if got != id {
		t.Errorf("user id = %v, want %v", got, id)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", time.Hour, time.Hour)
	other := NewJWTManager("secret-b", time.Hour, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "lan", "Lan", "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, -time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "lan", "Lan", "user")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, time.Hour)
	if _, err := m.ValidateAccessToken("not-a-token"); err == nil {
		t.Fatal("expected validation to fail for garbage input")
	}
}
