package auth

import (
	"testing"
	"time"

	"github.com/eventease-dev/eventease/internal/types"
	"github.com/golang-jwt/jwt/v5"
)

func initSecret(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	if err := InitJWTSecret(); err != nil {
		t.Fatalf("failed to init secret: %v", err)
	}
}

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if err := InitJWTSecret(); err == nil {
		t.Fatal("expected an error for a missing JWT_SECRET")
	}
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	initSecret(t)

	tokenString, err := GenerateJWT(42, "owner@example.com", types.RoleEventOwner)

	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	token, err := VerifyJWT(tokenString)

	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	userID, err := SubjectID(token)

	if err != nil {
		t.Fatalf("failed to extract subject: %v", err)
	}

	if userID != 42 {
		t.Errorf("got subject %d, want 42", userID)
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		t.Fatal("expected map claims")
	}

	if claims["role"] != types.RoleEventOwner {
		t.Errorf("got role %v, want %s", claims["role"], types.RoleEventOwner)
	}
}

func TestVerifyJWTMalformed(t *testing.T) {
	initSecret(t)

	if _, err := VerifyJWT("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	initSecret(t)

	claims := jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))

	if err != nil {
		t.Fatalf("failed to sign forged token: %v", err)
	}

	if _, err := VerifyJWT(forged); err == nil {
		t.Fatal("expected an error for a token signed with another secret")
	}
}

func TestVerifyJWTExpired(t *testing.T) {
	initSecret(t)

	claims := jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := VerifyJWT(expired); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestSubjectIDMissingClaim(t *testing.T) {
	initSecret(t)

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	token, err := VerifyJWT(tokenString)

	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}

	if _, err := SubjectID(token); err == nil {
		t.Fatal("expected an error for a token without a user id claim")
	}
}

// Bad credentials resolve to anonymous instead of failing loudly. These paths
// never reach the user lookup.
func TestResolveUserBadTokenIsAnonymous(t *testing.T) {
	initSecret(t)

	if _, ok := ResolveUser("garbage"); ok {
		t.Fatal("a garbage token must resolve to anonymous")
	}

	claims := jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, ok := ResolveUser(expired); ok {
		t.Fatal("an expired token must resolve to anonymous")
	}
}
