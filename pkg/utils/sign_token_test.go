package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := SignToken(42, "marie", "user")
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, float64(42), claims["uid"])
	assert.Equal(t, "marie", claims["user"])
	assert.Equal(t, "user", claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestSignToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := SignToken(1, "marie", "user")
	assert.Error(t, err)
}

func TestSignToken_WrongSecretFailsParse(t *testing.T) {
	t.Setenv("JWT_SECRET", "right-secret")

	signed, err := SignToken(1, "marie", "user")
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("other-secret"), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	assert.Error(t, err)
}
