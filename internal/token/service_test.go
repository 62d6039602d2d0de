package token

import (
	"testing"
	"time"

	"github.com/mbongo-pay/mbongo_pay/internal/identity"
)

func testUser() identity.User {
	return identity.User{
		ID:           "0b9f1c9e-4c2d-4d38-9f14-1a2b3c4d5e6f",
		Email:        "jane@example.com",
		UserType:     identity.UserTypeConsumer,
		TokenVersion: 2,
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tok, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != testUser().ID {
		t.Fatalf("expected subject %s, got %s", testUser().ID, claims.Subject)
	}
	if claims.TokenVersion != 2 {
		t.Fatalf("expected version 2, got %d", claims.TokenVersion)
	}
	if claims.UserType != identity.UserTypeConsumer {
		t.Fatalf("expected consumer, got %s", claims.UserType)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, err := NewService("secret-a", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewService("secret-b", time.Hour).Verify(tok); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	tok, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(tok); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	if _, err := svc.Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected garbage token to fail verification")
	}
}
