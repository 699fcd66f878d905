package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the portal can read from a stored login token. The
// signature is not checked: the backend owns the key and the portal only
// uses these fields for display.
type TokenInfo struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// InspectToken decodes the claims of a JWT without verifying it.
func InspectToken(tokenStr string) (*TokenInfo, error) {
	if tokenStr == "" {
		return nil, errors.New("empty token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	for _, key := range []string{"role", "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"} {
		if role, ok := claims[key].(string); ok {
			info.Role = role
			break
		}
	}
	return info, nil
}
