package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiry instant from a JWT access token's
// exp claim without verifying the signature. Signature verification is
// the resource server's job; the client only needs the expiry to
// schedule refreshes.
//
// Returns an error when the token is not a parseable JWT or carries no
// exp claim.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("auth: parse JWT: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("auth: read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("auth: JWT has no exp claim")
	}

	return exp.Time, nil
}
