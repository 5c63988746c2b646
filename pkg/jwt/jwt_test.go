package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()
	officeID := uuid.New()
	privileges := []string{"order:create", "stock:view"}

	token, err := GenerateToken(userID, "cashier@agriko.local", "Test Cashier", "CASHIER", &officeID, privileges, "v1")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token failed: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.RoleCode != "CASHIER" {
		t.Fatalf("expected role CASHIER, got %s", claims.RoleCode)
	}
	if claims.OfficeID == nil || *claims.OfficeID != officeID {
		t.Fatalf("office id not preserved")
	}
	if claims.TokenVersion != "v1" {
		t.Fatalf("token version not preserved")
	}
	if len(claims.Privileges) != 2 || claims.Privileges[0] != "order:create" {
		t.Fatalf("privileges not preserved: %v", claims.Privileges)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestTokenWithoutOffice(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "admin@agriko.local", "Admin", "SUPER_ADMIN", nil, nil, "v2")
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token failed: %v", err)
	}
	if claims.OfficeID != nil {
		t.Fatalf("expected nil office id for super admin token")
	}
}
