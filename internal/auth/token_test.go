package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-only-secret"))
	require.NoError(t, err)
	return token
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	iat := exp.Add(-2 * time.Hour)
	token := signed(t, jwt.MapClaims{
		"sub":  "17",
		"role": "Manager",
		"exp":  exp.Unix(),
		"iat":  iat.Unix(),
	})

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "17", info.Subject)
	assert.Equal(t, "Manager", info.Role)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.True(t, info.IssuedAt.Equal(iat))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp))
}

func TestInspectTokenDotNetRoleClaim(t *testing.T) {
	token := signed(t, jwt.MapClaims{"http://schemas.microsoft.com/ws/2008/06/identity/claims/role": "Employee"})

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Employee", info.Role)
	assert.False(t, info.Expired(time.Now()))
}

func TestInspectTokenRejectsGarbage(t *testing.T) {
	_, err := InspectToken("")
	assert.Error(t, err)
	_, err = InspectToken("not-a-jwt")
	assert.Error(t, err)
}
