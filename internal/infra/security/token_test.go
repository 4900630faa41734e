package security

import (
	"errors"
	"testing"
	"time"

	"github.com/brightshield/insurance-portal/internal/core/domain"
)

func TestTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	manager, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	manager.WithClock(func() time.Time { return issuedAt })

	token, err := manager.Issue(domain.User{
		ID:    "user-1",
		Email: "jamie@example.com",
		Role:  domain.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Fatalf("subject = %q, want user-1", claims.UserID())
	}
	if claims.Email != "jamie@example.com" {
		t.Fatalf("email = %q, want jamie@example.com", claims.Email)
	}
	if claims.Role != domain.RoleCustomer {
		t.Fatalf("role = %q, want customer", claims.Role)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	manager, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	manager.WithClock(func() time.Time { return issuedAt })

	token, err := manager.Issue(domain.User{ID: "user-1", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	manager.WithClock(func() time.Time { return issuedAt.Add(2 * time.Hour) })
	if _, err := manager.Parse(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issuer, err := NewTokenManager("secret-a", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	verifier, err := NewTokenManager("secret-b", time.Hour)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}

	token, err := issuer.Issue(domain.User{ID: "user-1", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := verifier.Parse("junk"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage input: expected ErrInvalidToken, got %v", err)
	}
}

func TestDefaultTokenTTL(t *testing.T) {
	manager, err := NewTokenManager("test-secret", 0)
	if err != nil {
		t.Fatalf("new token manager: %v", err)
	}
	if manager.ttl != 7*24*time.Hour {
		t.Fatalf("default ttl = %v, want 168h", manager.ttl)
	}
}
