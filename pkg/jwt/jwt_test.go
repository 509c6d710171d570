package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()
	privileges := []string{"sale:create", "debt:view"}

	token, err := GenerateToken(userID, "alice@example.com", "Alice", "SALESPERSON", privileges, "v1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("email = %q, want alice@example.com", claims.Email)
	}
	if claims.RoleCode != "SALESPERSON" {
		t.Errorf("role_code = %q, want SALESPERSON", claims.RoleCode)
	}
	if len(claims.Privileges) != 2 || claims.Privileges[0] != "sale:create" {
		t.Errorf("privileges = %v, want %v", claims.Privileges, privileges)
	}
	if claims.TokenVersion != "v1" {
		t.Errorf("token_version = %q, want v1", claims.TokenVersion)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := ValidateToken(token); err == nil {
			t.Errorf("token %q accepted", token)
		}
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "a@b.c", "A", "MANAGER", nil, "v1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("tampered token accepted")
	}
}
