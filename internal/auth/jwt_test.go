package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	testSecret = "test-secret-at-least-32-chars-long-for-security"
	testIssuer = "dailyspark-test"
)

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, 15*time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	validatedID, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if validatedID != userID {
		t.Errorf("expected userID %s, got %s", userID, validatedID)
	}
}

func TestJWTManager_ValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer)

	token, err := manager.GenerateAccessToken(uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = manager.ValidateToken(context.Background(), token)
	if err == nil {
		t.Fatal("expected error for expired token")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestJWTManager_ValidateToken_InvalidSignature(t *testing.T) {
	issuerManager := NewJWTManager(testSecret, testIssuer)
	otherManager := NewJWTManager("another-secret-at-least-32-chars-long!!", testIssuer)

	token, err := issuerManager.GenerateAccessToken(uuid.New(), time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := otherManager.ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestJWTManager_ValidateToken_Malformed(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer)

	for _, token := range []string{"not-a-jwt", "a.b.c", strings.Repeat("x", 300)} {
		if _, err := manager.ValidateToken(context.Background(), token); err == nil {
			t.Errorf("expected error for malformed token %q", token)
		}
	}
}

func TestJWTManager_ValidateToken_WrongIssuer(t *testing.T) {
	token, err := NewJWTManager(testSecret, "someone-else").GenerateAccessToken(uuid.New(), time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = NewJWTManager(testSecret, testIssuer).ValidateToken(context.Background(), token)
	if !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Errorf("expected jwt.ErrTokenInvalidIssuer, got %v", err)
	}
}

func TestJWTManager_ValidateToken_MissingExpiry(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: uuid.NewString(), Issuer: testIssuer}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTManager(testSecret, testIssuer).ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected error for token without exp")
	}
}

func TestJWTManager_ValidateToken_NonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = NewJWTManager(testSecret, testIssuer).ValidateToken(context.Background(), token)
	if err == nil || !strings.Contains(err.Error(), "invalid subject UUID") {
		t.Fatalf("expected invalid subject error, got %v", err)
	}
}

func TestJWTManager_ValidateToken_EmptyString(t *testing.T) {
	_, err := NewJWTManager(testSecret, testIssuer).ValidateToken(context.Background(), "")
	if !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}
