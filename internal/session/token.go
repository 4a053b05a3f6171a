package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether token is a JWT whose exp claim lies in the past.
// The signature is deliberately not verified: the client does not hold the
// signing key, and the API boundary remains the authority on validity. A
// token that is not a JWT, or carries no exp claim, is reported as not
// expired so the lenient presence-only behaviour is preserved.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
