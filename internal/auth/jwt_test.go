package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTFlow(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	userID := uuid.New().String()
	email := "test@example.com"

	token, err := GenerateToken(userID, email, RoleCustomer)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	extractedUserID, extractedEmail, extractedRole, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if extractedUserID != userID {
		t.Fatalf("Expected userID %s, got %s", userID, extractedUserID)
	}
	if extractedEmail != email {
		t.Fatalf("Expected email %s, got %s", email, extractedEmail)
	}
	if extractedRole != RoleCustomer {
		t.Fatalf("Expected role %s, got %s", RoleCustomer, extractedRole)
	}
}

func TestGenerateTokenRejectsEmptyUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken("", "a@b.com", RoleCustomer); err == nil {
		t.Fatal("expected error for empty userID")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, _, _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
