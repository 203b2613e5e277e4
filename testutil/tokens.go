// Package testutil mints session tokens for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("book-wishlist-test-secret")

// Token signs an HS256 token for userID that expires at exp
func Token(t *testing.T, userID any, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    exp.Unix(),
		"iat":    time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("testutil: sign token: %v", err)
	}
	return signed
}

// ValidToken expires an hour from now
func ValidToken(t *testing.T, userID any) string {
	t.Helper()
	return Token(t, userID, time.Now().Add(time.Hour))
}

// ExpiredToken expired ten seconds ago
func ExpiredToken(t *testing.T, userID any) string {
	t.Helper()
	return Token(t, userID, time.Now().Add(-10*time.Second))
}

// TokenWithoutExp carries a userId but no exp claim
func TokenWithoutExp(t *testing.T, userID any) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": userID}).SignedString(testSecret)
	if err != nil {
		t.Fatalf("testutil: sign token: %v", err)
	}
	return signed
}
