package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campusride/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Generate("user-1", domain.RoleCaptain)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if claims.Role != domain.RoleCaptain {
		t.Errorf("expected captain role, got %s", claims.Role)
	}
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Generate("user-1", domain.RoleStudent)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("issuer-secret", time.Hour)
	verifier := NewTokenManager("other-secret", time.Hour)

	token, err := issuer.Generate("user-1", domain.RoleStudent)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	secret := "test-secret"
	claims := &Claims{
		UserID: "user-1",
		Role:   domain.Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := NewTokenManager(secret, time.Hour).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
