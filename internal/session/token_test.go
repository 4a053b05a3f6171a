package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestExpired_PastExp(t *testing.T) {
	now := time.Now()
	token := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})

	if !Expired(token, now) {
		t.Fatal("token with past exp should be expired")
	}
}

func TestExpired_FutureExp(t *testing.T) {
	now := time.Now()
	token := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})

	if Expired(token, now) {
		t.Fatal("token with future exp should not be expired")
	}
}

func TestExpired_NoExpClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-1"})

	if Expired(token, time.Now()) {
		t.Fatal("token without exp should fall back to not-expired")
	}
}

func TestExpired_OpaqueToken(t *testing.T) {
	// Not a JWT at all: presence-only behaviour must be preserved.
	if Expired("some-opaque-session-token", time.Now()) {
		t.Fatal("opaque token should not be reported expired")
	}
}
