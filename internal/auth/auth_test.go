package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	tok, err := m.Issue(Identity{UserID: 42, Email: "a@b.c", Name: "Asha", Role: RoleActor, IsVerified: true})
	require.NoError(t, err)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, RoleActor, claims.Role)
	assert.True(t, claims.IsVerified)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tok, err := NewTokenManager("one", time.Hour).Issue(Identity{UserID: 1, Role: RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)
	tok, err := m.Issue(Identity{UserID: 1})
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RoleFallsBackToUserType(t *testing.T) {
	claims := Claims{UserID: 5, UserType: RoleProductionHouse}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	parsed, err := NewTokenManager("secret", time.Hour).Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, RoleProductionHouse, parsed.Role)
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
	assert.ErrorIs(t, ValidatePassword("abc"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("abcdef"))
}

func TestRoleHelpers(t *testing.T) {
	assert.True(t, IsAdmin(&Claims{Role: RoleAdmin}))
	assert.False(t, IsAdmin(nil))
}
