package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims UserClaims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestValidateUserTokenSuccess(t *testing.T) {
	signed := signToken(t, UserClaims{
		UserID:   "u-1",
		UserName: "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	claims, err := ValidateUserToken(signed, testSecret)
	if err != nil {
		t.Fatalf("ValidateUserToken failed: %v", err)
	}
	if claims.UserID != "u-1" || claims.UserName != "Ada" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateUserTokenWrongSecret(t *testing.T) {
	signed := signToken(t, UserClaims{UserID: "u-1"}, testSecret)
	if _, err := ValidateUserToken(signed, []byte("other-secret")); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestValidateUserTokenExpired(t *testing.T) {
	signed := signToken(t, UserClaims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)
	if _, err := ValidateUserToken(signed, testSecret); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestValidateUserTokenMissingIdentity(t *testing.T) {
	signed := signToken(t, UserClaims{UserName: "Ada"}, testSecret)
	if _, err := ValidateUserToken(signed, testSecret); err == nil {
		t.Fatalf("expected error for token without user id")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractTokenFromHeader failed: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestExtractTokenFromHeaderMissing(t *testing.T) {
	if _, err := ExtractTokenFromHeader(""); err == nil {
		t.Fatalf("expected error for missing header")
	}
}

func TestExtractTokenFromHeaderWrongScheme(t *testing.T) {
	if _, err := ExtractTokenFromHeader("Basic abc"); err == nil {
		t.Fatalf("expected error for non-bearer header")
	}
}
